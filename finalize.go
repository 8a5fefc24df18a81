package onyxc

import (
	"fmt"
	"os"
	"strings"

	"github.com/onyxlang/onyxc/linker"
	"github.com/onyxlang/onyxc/options"
)

// finalize implements spec.md §4.6: once the heap has emptied without
// errors, check that link_options is declared, write the module (and
// its `.data` companion, if the MVP-threading split applies), write any
// accumulated foreign-interface `.js` partials, and print the --perf
// report if requested. The tags/syminfo/doc companions are not written
// here; the CLI front end writes them after Compile returns.
func (ctx *Context) finalize() error {
	runtimeVars := ctx.Packages.GetOrCreate(runtimeVarsPackage)
	if ctx.Options.Runtime != options.RuntimeCustom {
		if err := linker.ResolveLinkOptions(func(name string) bool {
			_, ok := runtimeVars.Scope.LookupLocal(name)
			return ok
		}); err != nil {
			return fmt.Errorf("finalize: %w", err)
		}
	}

	module, dataCompanion := linker.Link(ctx.emitter, linker.Options{
		MultiThreaded: ctx.Options.MultiThreaded,
		PostMVP:       ctx.Options.PostMVPEnabled(),
	})

	if err := os.WriteFile(ctx.Options.Output, module, 0o644); err != nil {
		return fmt.Errorf("finalize: cannot create target file: %w", err)
	}

	if dataCompanion != nil {
		if err := os.WriteFile(ctx.Options.Output+".data", dataCompanion, 0o644); err != nil {
			return fmt.Errorf("finalize: cannot write .data companion: %w", err)
		}
	}

	if len(ctx.jsPartials) > 0 {
		jsPath := strings.TrimSuffix(ctx.Options.Output, ".wasm") + ".js"
		if err := os.WriteFile(jsPath, []byte(strings.Join(ctx.jsPartials, "\n")), 0o644); err != nil {
			return fmt.Errorf("finalize: cannot write .js companion: %w", err)
		}
	}

	if ctx.Options.Perf && ctx.perf != nil {
		ctx.perf.Report(os.Stdout)
	}

	return nil
}
