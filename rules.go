// FILE: lixenwraith/recorder/rules.go
package recorder

import (
	"context"

	"github.com/lixenwraith/recorder/mask"
)

// AddMaskRule appends a rule; it is evaluated after every rule already registered.
// The change applies from the next structured entry the writer picks up.
func (r *Recorder) AddMaskRule(rule mask.Rule) {
	r.rules.Add(rule)
}

// RemoveMaskRule removes every rule of the given kind and returns how many were removed
func (r *Recorder) RemoveMaskRule(kind mask.Kind) int {
	return r.rules.Remove(kind)
}

// ClearMaskRules removes all rules
func (r *Recorder) ClearMaskRules() {
	r.rules.Clear()
}

// MaskRules returns the registered rules in evaluation order
func (r *Recorder) MaskRules() mask.Chain {
	return r.rules.Snapshot()
}

// loadMaskRules builds the initial rule set: rules passed as options first, then the rule file
func loadMaskRules(cfg *Config, initial []mask.Rule) (*mask.Set, error) {
	set := mask.NewSet(initial...)
	if cfg.MaskRulesFile == "" {
		return set, nil
	}

	rules, err := mask.LoadFile(cfg.MaskRulesFile)
	if err != nil {
		return nil, fmtErrorf("failed to load mask rules: %w", err)
	}
	for _, rule := range rules {
		set.Add(rule)
	}
	return set, nil
}

// reloadMaskRules rebuilds the set from the construction-time option rules followed by
// the reloaded file rules. Rules added at runtime are replaced.
func (r *Recorder) reloadMaskRules(fileRules []mask.Rule) {
	rules := make([]mask.Rule, 0, len(r.optionRules)+len(fileRules))
	rules = append(rules, r.optionRules...)
	rules = append(rules, fileRules...)
	r.rules.Replace(rules)
}

// startRuleWatch reloads the rule file on change until Close
func (r *Recorder) startRuleWatch() {
	ctx, cancel := context.WithCancel(context.Background())
	r.watchCancel = cancel
	r.watchDone = make(chan struct{})

	go func() {
		defer close(r.watchDone)
		err := mask.Watch(ctx, r.cfg.MaskRulesFile, r.reloadMaskRules, func(err error) {
			r.internalLog("mask rule reload failed: %v", err)
		})
		if err != nil {
			r.internalLog("mask rule watch stopped: %v", err)
		}
	}()
}

// stopRuleWatch cancels the watcher and waits for it to exit
func (r *Recorder) stopRuleWatch() {
	if r.watchCancel == nil {
		return
	}
	r.watchCancel()
	<-r.watchDone
}
