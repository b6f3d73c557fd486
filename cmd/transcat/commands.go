package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/avlasov/transcat/internal/reqresp"
	"github.com/avlasov/transcat/internal/router"
	"github.com/avlasov/transcat/internal/svgrender"
	"github.com/avlasov/transcat/internal/transcaterr"
	"github.com/avlasov/transcat/internal/wire"
)

// newRootCommand builds the transcat root command and its two subcommands.
// The hyphenated spellings are cobra's idiomatic form, with the underscored
// make_base/process_requests spellings kept as aliases so either invocation
// works.
func newRootCommand(logger zerolog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "transcat",
		Short:         "Transport catalogue query engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMakeBaseCommand(logger))
	root.AddCommand(newProcessRequestsCommand(logger))

	return root
}

func newMakeBaseCommand(logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "make-base",
		Aliases: []string{"make_base"},
		Short:   "Ingest base_requests and persist a catalogue + router snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMakeBase(logger, os.Stdin)
		},
	}
}

func newProcessRequestsCommand(logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "process-requests",
		Aliases: []string{"process_requests"},
		Short:   "Answer stat_requests against a persisted catalogue + router snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcessRequests(logger, os.Stdin, os.Stdout)
		},
	}
}

func runMakeBase(logger zerolog.Logger, stdin *os.File) error {
	in, err := reqresp.DecodeInput(stdin)
	if err != nil {
		logger.Error().Err(err).Msg("decoding input blob")

		return err
	}

	cat, err := buildCatalogue(in.BaseRequests)
	if err != nil {
		logger.Error().Err(err).Msg("building catalogue")

		return err
	}

	routingSettings := router.Settings{
		BusVelocityKMH: in.RoutingSettings.BusVelocity,
		BusWaitTimeMin: in.RoutingSettings.BusWaitTime,
	}
	r, err := router.Build(cat, routingSettings)
	if err != nil {
		logger.Error().Err(err).Msg("building router")

		return err
	}

	render := renderSettingsFromBlob(in.RenderSettings)

	if in.SerializationSettings.File == "" {
		err := transcaterr.New(transcaterr.KindInvalidInput, "serialization_settings.file is required")
		logger.Error().Err(err).Msg("make-base")

		return err
	}

	f, err := os.Create(in.SerializationSettings.File)
	if err != nil {
		err = transcaterr.Wrap(transcaterr.KindInternal, err, "creating serialization file")
		logger.Error().Err(err).Msg("make-base")

		return err
	}
	defer f.Close()

	if err := wire.Serialize(f, wire.Snapshot{Catalogue: cat, Render: render, Router: r}); err != nil {
		logger.Error().Err(err).Msg("serializing snapshot")

		return err
	}

	logger.Info().
		Int("stops", len(cat.Stops())).
		Int("buses", len(cat.Buses())).
		Str("file", in.SerializationSettings.File).
		Msg("base built")

	return nil
}

func runProcessRequests(logger zerolog.Logger, stdin, stdout *os.File) error {
	in, err := reqresp.DecodeInput(stdin)
	if err != nil {
		logger.Error().Err(err).Msg("decoding input blob")

		return err
	}

	if in.SerializationSettings.File == "" {
		err := transcaterr.New(transcaterr.KindInvalidInput, "serialization_settings.file is required")
		logger.Error().Err(err).Msg("process-requests")

		return err
	}

	f, err := os.Open(in.SerializationSettings.File)
	if err != nil {
		err = transcaterr.Wrap(transcaterr.KindInternal, err, "opening serialization file")
		logger.Error().Err(err).Msg("process-requests")

		return err
	}
	defer f.Close()

	snap, err := wire.Deserialize(f)
	if err != nil {
		logger.Error().Err(err).Msg("deserializing snapshot")

		return err
	}

	responses := make([]reqresp.Response, 0, len(in.StatRequests))
	for _, req := range in.StatRequests {
		responses = append(responses, answer(snap, req))
	}

	if err := reqresp.EncodeOutput(stdout, responses); err != nil {
		logger.Error().Err(err).Msg("encoding output blob")

		return err
	}

	return nil
}

func renderSettingsFromBlob(rs reqresp.RenderSettings) svgrender.Settings {
	if rs.Width == 0 && rs.Height == 0 {
		return svgrender.DefaultSettings()
	}

	return svgrender.Settings{
		Width:           rs.Width,
		Height:          rs.Height,
		Padding:         rs.Padding,
		LineWidth:       rs.LineWidth,
		StopRadius:      rs.StopRadius,
		StopLabelFont:   rs.StopLabelFont,
		BusLabelFont:    rs.BusLabelFont,
		UnderlayerWidth: rs.UnderlayerWidth,
		UnderlayerColor: rs.UnderlayerColor,
		ColorPalette:    rs.ColorPalette,
		BusLabelOffset:  rs.BusLabelOffset,
		StopLabelOffset: rs.StopLabelOffset,
	}
}
