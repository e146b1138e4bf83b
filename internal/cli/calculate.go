package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibmatrix/internal/config"
	"github.com/agbru/fibmatrix/internal/ui"
	"github.com/agbru/fibmatrix/pkg/fibonacci"
)

// PrintExecutionConfig displays the calculation about to run: index,
// overflow policy, timeout and runtime environment.
func PrintExecutionConfig(cfg config.AppConfig, calc fibonacci.Calculator, out io.Writer, theme ui.Theme) {
	fmt.Fprintln(out, theme.Bold.Sprint("--- Execution Configuration ---"))
	fmt.Fprintf(out, "Calculating %s with %s, overflow policy %s, timeout %s.\n",
		theme.Info.Sprintf("F(%d)", cfg.N),
		theme.Success.Sprint(calc.Name()),
		theme.Warning.Sprint(cfg.Policy()),
		theme.Warning.Sprint(cfg.Timeout))
	fmt.Fprintf(out, "Environment: Go %s on %s/%s.\n",
		theme.Secondary.Sprint(runtime.Version()), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(out)
}
