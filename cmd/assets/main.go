package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/plat-assets/internal/asset"
	"github.com/joeblew999/plat-assets/internal/cobrand/bathnes"
	"github.com/joeblew999/plat-assets/internal/config"
	"github.com/joeblew999/plat-assets/internal/ctxlog"
	"github.com/joeblew999/plat-assets/internal/server"
	"github.com/joeblew999/plat-assets/internal/service"
)

// Options defines all CLI flags and env vars for the asset server.
// Env vars: SERVICE_HOST, SERVICE_PORT, SERVICE_MAPS_ENABLED, ...
type Options struct {
	Host         string `doc:"Host to bind to" default:"0.0.0.0"`
	Port         int    `doc:"Port to listen on" short:"p" default:"8087"`
	DataDir      string `doc:"Directory for the registration ledger" default:".data"`
	WebDir       string `doc:"Serve web/ from this directory instead of the embedded copy"`
	MapsEnabled  bool   `doc:"Mapping is supported; register asset layers" default:"true"`
	PinPrefix    string `doc:"Image path prefix for map pins (default: data-pin_prefix of the viewer page)"`
	LayerVersion int    `doc:"Highest layer definition version to use, 0 for latest" default:"0"`
	DefaultsFile string `doc:"YAML file merged over the cobrand defaults"`
	LogLevel     string `doc:"Log level: debug, info, warn, error" default:"info"`
	NoDB         bool   `doc:"Do not open the DuckDB registration ledger"`
}

func serverConfig(opts *Options) server.Config {
	return server.Config{
		Host:         opts.Host,
		Port:         fmt.Sprintf("%d", opts.Port),
		DataDir:      opts.DataDir,
		WebDir:       opts.WebDir,
		MapsEnabled:  opts.MapsEnabled,
		PinPrefix:    opts.PinPrefix,
		LayerVersion: opts.LayerVersion,
		DefaultsFile: opts.DefaultsFile,
		NoDB:         opts.NoDB,
	}
}

func newContext(opts *Options) context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.New(opts.LogLevel))
}

func fatal(ctx context.Context, msg string, err error) {
	ctxlog.FromContext(ctx).Error(msg, "err", err)
	os.Exit(1)
}

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, opts *Options) {
		var srv *server.Server
		var httpSrv *http.Server
		ctx := newContext(opts)
		log := ctxlog.FromContext(ctx)

		hooks.OnStart(func() {
			var err error
			srv, err = server.New(ctx, serverConfig(opts))
			if err != nil {
				fatal(ctx, "server setup failed", err)
			}

			addr := fmt.Sprintf("%s:%d", opts.Host, opts.Port)
			displayHost := opts.Host
			if displayHost == "0.0.0.0" {
				displayHost = "localhost"
			}
			baseURL := fmt.Sprintf("http://%s:%d", displayHost, opts.Port)

			log.Info("plat-assets API server starting",
				"server", baseURL,
				"viewer", baseURL+"/viewer",
				"docs", baseURL+"/docs",
				"layers", len(srv.Assets().List()),
				"maps_enabled", opts.MapsEnabled)

			httpSrv = &http.Server{Addr: addr, Handler: srv}
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fatal(ctx, "server error", err)
			}
		})

		hooks.OnStop(func() {
			if httpSrv != nil {
				httpSrv.Shutdown(context.Background())
			}
			if srv != nil {
				srv.Close()
			}
		})
	})

	cli.Root().Use = "assets"
	cli.Root().Short = "Asset layer registry for the bathnes cobrand"
	cli.Root().Version = "0.1.0"

	// spec subcommand: export OpenAPI spec
	specCmd := &cobra.Command{
		Use:   "spec",
		Short: "Export OpenAPI spec (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			ctx := newContext(opts)
			cfg := serverConfig(opts)
			cfg.NoDB = true
			srv, err := server.New(ctx, cfg)
			if err != nil {
				fatal(ctx, "server setup failed", err)
			}
			useYAML, _ := cmd.Flags().GetBool("yaml")
			if err := write(os.Stdout, srv.OpenAPI(), useYAML); err != nil {
				fatal(ctx, "marshaling spec", err)
			}
		}),
	}
	specCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(specCmd)

	// export subcommand: the layer configs the server would register
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the asset layer configs (JSON by default, --yaml for YAML)",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			ctx := newContext(opts)
			layers, err := registeredLayers(ctx, opts)
			if err != nil {
				fatal(ctx, "building layers", err)
			}
			useYAML, _ := cmd.Flags().GetBool("yaml")
			if err := write(os.Stdout, layers, useYAML); err != nil {
				fatal(ctx, "marshaling layers", err)
			}
		}),
	}
	exportCmd.Flags().BoolP("yaml", "y", false, "Output as YAML instead of JSON")
	cli.Root().AddCommand(exportCmd)

	// classify subcommand: style and describe features from a GeoJSON file
	classifyCmd := &cobra.Command{
		Use:   "classify <layer-id> <file.geojson>",
		Short: "Apply a layer's style rules and attributes to a GeoJSON FeatureCollection",
		Args:  cobra.ExactArgs(2),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			ctx := newContext(opts)
			results, err := classifyFile(opts, args[0], args[1])
			if err != nil {
				fatal(ctx, "classify failed", err)
			}
			if err := write(os.Stdout, results, false); err != nil {
				fatal(ctx, "marshaling results", err)
			}
		}),
	}
	cli.Root().AddCommand(classifyCmd)

	cli.Run()
}

func buildLayers(opts *Options) ([]asset.LayerConfig, error) {
	defaults, err := config.Defaults(bathnes.Defaults(), opts.DefaultsFile)
	if err != nil {
		return nil, err
	}
	return bathnes.Layers(defaults, opts.LayerVersion), nil
}

// registeredLayers returns what the server would register: nothing when
// maps are disabled.
func registeredLayers(ctx context.Context, opts *Options) ([]asset.LayerConfig, error) {
	layers, err := buildLayers(opts)
	if err != nil {
		return nil, err
	}
	out := []asset.LayerConfig{}
	platform := asset.Platform{MapsEnabled: opts.MapsEnabled, PinPrefix: opts.PinPrefix}
	asset.Setup(ctx, platform, asset.RegistrarFunc(func(l asset.LayerConfig) {
		out = append(out, l)
	}), layers...)
	return out, nil
}

func classifyFile(opts *Options, id, path string) ([]service.FeatureResult, error) {
	layers, err := buildLayers(opts)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, l := range layers {
		if l.ID != id {
			continue
		}
		results := make([]service.FeatureResult, 0, len(fc.Features))
		for i, f := range fc.Features {
			if f == nil {
				return nil, fmt.Errorf("parsing %s: feature %d is null", path, i)
			}
			results = append(results, service.Classify(l, f))
		}
		return results, nil
	}
	return nil, fmt.Errorf("asset layer %q not found", id)
}

func write(w *os.File, v any, useYAML bool) error {
	var output []byte
	var err error
	if useYAML {
		output, err = yaml.Marshal(v)
	} else {
		output, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
