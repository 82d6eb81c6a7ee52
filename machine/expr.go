package machine

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
)

// compileCondition compiles a config condition expression into a Condition.
// The expression sees the variable map produced by vars as "v" and must
// produce a boolean, e.g. "v.speed > 0.5".
//
// Evaluation errors make the condition report false: a broken expression
// keeps its transition from firing rather than tearing the tick down.
func compileCondition[I, U any](expr string, vars func(I, U) map[string]any) (Condition[I, U], error) {
	script := tengo.NewScript(fmt.Appendf(nil, "out := (%s)", expr))

	err := script.Add("v", map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to bind expression vars for %q: %w", expr, err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile condition %q: %w", expr, err)
	}

	// tengo compiled scripts are not safe for concurrent runs; the lock keeps
	// a shared definition usable from machines ticked on different
	// goroutines.
	var mutex sync.Mutex

	return func(input I, update U) bool {
		mutex.Lock()
		defer mutex.Unlock()

		err := compiled.Set("v", vars(input, update))
		if err != nil {
			return false
		}

		err = compiled.Run()
		if err != nil {
			return false
		}

		return compiled.Get("out").Bool()
	}, nil
}
