package logger

import (
	"io"
	"os"
	"studyhall/config"
	"studyhall/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	fieldService = "service"
	fieldVenueID = "venue_id"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// Configure switches to plain JSON lines outside development and tags every entry with the app name.
func Configure(config *config.Config) {
	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if config.Server.Env == constant.ServerEnvProduction {
		output = os.Stdout
	}

	ctx := zerolog.New(output).With().Timestamp()
	if config.App.Name != "" {
		ctx = ctx.Str(fieldService, config.App.Name)
	}

	log.Logger = ctx.Logger()

	SetLogLevel(config)
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

// ForVenue returns a child of the global logger carrying the venue id.
func ForVenue(venueID string) zerolog.Logger {
	return log.With().Str(fieldVenueID, venueID).Logger()
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
