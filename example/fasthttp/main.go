// FILE: lixenwraith/recorder/example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/recorder"
	"github.com/lixenwraith/recorder/compat"
	"github.com/lixenwraith/recorder/mask"
	"github.com/valyala/fasthttp"
)

func main() {
	rec, err := recorder.NewBuilder().
		Directory("/var/log/fasthttp").
		DestinationString("downloads").
		QueueCapacity(2048).
		TextSanitization("escape").
		MaskRules(
			mask.Full([]string{"authorization", "cookie"}, true, '*'),
			mask.Email([]string{"email"}, true, '*'),
		).
		Build()
	if err != nil {
		panic(err)
	}
	defer rec.Shutdown(2 * time.Second)

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		rec,
		compat.WithDefaultLevel(compat.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler(rec),
		Logger:  fasthttpAdapter,

		Name:         "MyServer",
		Concurrency:  fasthttp.DefaultConcurrency,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		TCPKeepalive: true,
	}

	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

// requestHandler records each request with its headers; POST /export hands the
// current log to the downloads folder
func requestHandler(rec *recorder.Recorder) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		headers := make(map[string]string)
		ctx.Request.Header.VisitAll(func(key, value []byte) {
			headers[strings.ToLower(string(key))] = string(value)
		})
		rec.LogJSON(map[string]any{
			"method":  string(ctx.Method()),
			"path":    string(ctx.Path()),
			"headers": headers,
		})

		if ctx.IsPost() && string(ctx.Path()) == "/export" {
			name, err := rec.ExportSnapshot(ctx)
			if err != nil {
				rec.LogError(err)
				ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
				return
			}
			fmt.Fprintf(ctx, "exported %s\n", name)
			return
		}

		ctx.SetContentType("text/plain")
		fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
	}
}

func customLevelDetector(msg string) compat.Level {
	if strings.Contains(msg, "connection cannot be served") {
		return compat.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return compat.LevelError
	}
	return compat.DetectLogLevel(msg)
}
