package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/topdown/ecs"
	"github.com/milk9111/topdown/nav"
	"github.com/milk9111/topdown/prefabs"
)

// BreakScript runs an embedded tengo script whenever an obstacle breaks.
// The script sees __kind, __x, and __y and decides drops or effects on its
// own; script failures are logged and never stall the game.
type BreakScript struct {
	compiled *tengo.Compiled
}

// NewBreakScript loads and compiles a script from the prefabs script FS.
func NewBreakScript(path string) (*BreakScript, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("system: load script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("__kind", "")
	_ = script.Add("__x", 0)
	_ = script.Add("__y", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile script %s: %w", path, err)
	}
	return &BreakScript{compiled: compiled}, nil
}

// Run executes the script for one broken obstacle.
func (bs *BreakScript) Run(kind string, root nav.Coord) error {
	if bs == nil || bs.compiled == nil {
		return nil
	}
	if err := bs.compiled.Set("__kind", kind); err != nil {
		return err
	}
	if err := bs.compiled.Set("__x", root.X); err != nil {
		return err
	}
	if err := bs.compiled.Set("__y", root.Y); err != nil {
		return err
	}
	return bs.compiled.Run()
}

// ScriptSystem feeds obstacle-broken events to the break script.
type ScriptSystem struct {
	script *BreakScript
}

func NewScriptSystem(script *BreakScript) *ScriptSystem {
	return &ScriptSystem{script: script}
}

func (ss *ScriptSystem) Update(w *ecs.World, dt float64) {
	if ss == nil || ss.script == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if evt.Type != EventObstacleBroken {
			continue
		}
		broken, ok := evt.Data.(BrokenObstacle)
		if !ok {
			continue
		}
		if err := ss.script.Run(broken.Kind, broken.Root); err != nil {
			log.Printf("system: break script for %s at %v: %v", broken.Kind, broken.Root, err)
		}
	}
}
