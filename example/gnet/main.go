// FILE: lixenwraith/recorder/example/gnet/main.go
package main

import (
	"time"

	"github.com/lixenwraith/recorder"
	"github.com/lixenwraith/recorder/compat"
	"github.com/lixenwraith/recorder/mask"
	"github.com/panjf2000/gnet/v2"
)

// echoServer records every payload it echoes
type echoServer struct {
	gnet.BuiltinEventEngine
	rec *recorder.Recorder
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	es.rec.LogJSON(map[string]any{
		"remote":  c.RemoteAddr().String(),
		"payload": string(buf),
	})
	c.Write(buf)
	return gnet.None
}

func main() {
	rec, err := recorder.NewBuilder().
		Directory("/var/log/gnet").
		Destination("").
		ExportTarget("/var/backups/gnet").
		ExportSchedule("0 * * * *").
		MaskRules(mask.MustRegex(`\b\d{16}\b`, false, '*')).
		Build()
	if err != nil {
		panic(err)
	}
	defer rec.Shutdown(2 * time.Second)

	// Key-value pairs in gnet messages become entry fields
	gnetAdapter := compat.NewStructuredGnetAdapter(rec)

	err = gnet.Run(
		&echoServer{rec: rec},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
