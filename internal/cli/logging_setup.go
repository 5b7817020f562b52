package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/producttable/internal/config"
	"github.com/rshade/producttable/internal/logging"
)

// setupLogging configures the logger based on config file, environment, and
// CLI flags, and stores it in the command context with a fresh trace ID.
func setupLogging(cmd *cobra.Command) logging.LogPathResult {
	loggingCfg := config.GetLoggingConfig()

	debug, _ := cmd.Flags().GetBool(flagDebug)
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	if loggingCfg.File != "" {
		if err := config.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	if err := config.GetGlobalConfig().LoadError(); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(),
			"Warning: %v (run 'producttable config validate' for details)\n", err)
		logger.Warn().Str("operation", "load_config").Err(err).Msg("using default configuration")
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logging.WithTraceID(logger, traceID).WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}
