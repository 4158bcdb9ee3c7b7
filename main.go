package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/fresneltrace/fresnel/log"
	"github.com/fresneltrace/fresnel/pkg/renderer"
	"github.com/fresneltrace/fresnel/pkg/scene"
	"github.com/fresneltrace/fresnel/pkg/scenegen"
	"github.com/fresneltrace/fresnel/web/server"
)

var logger = log.New("fresnel")

func main() {
	app := cli.NewApp()
	app.Name = "fresnel"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.ArgsUsage = "[scene.json]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	// Bare `fresnel [scene.json]` renders, matching the render command.
	app.Action = renderAction
	app.Commands = []cli.Command{
		{
			Name:      "render",
			Usage:     "render a scene file to a PNG image",
			ArgsUsage: "[scene.json]",
			Flags:     renderFlags,
			Action:    renderAction,
		},
		{
			Name:  "scenes",
			Usage: "list the built-in scene library",
			Subcommands: []cli.Command{
				{
					Name:      "export",
					Usage:     "write a built-in scene as a JSON file",
					ArgsUsage: "NAME [FILE]",
					Action:    exportSceneAction,
				},
			},
			Action: listScenesAction,
		},
		{
			Name:  "generate",
			Usage: "generate a scene file with an LLM",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "prompt, p",
					Usage: "description of the scene to generate",
				},
				cli.StringFlag{
					Name:  "model, m",
					Usage: "model id (default: first model of the first configured provider)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "scene.json",
					Usage: "where to write the generated scene",
				},
				cli.BoolFlag{
					Name:  "render",
					Usage: "render the generated scene immediately",
				},
			},
			Action: generateAction,
		},
		{
			Name:  "serve",
			Usage: "start the preview web server",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port",
					Value: 8080,
					Usage: "listen port",
				},
				cli.StringFlag{
					Name:  "scene",
					Usage: "scene file to expose alongside the built-ins",
				},
			},
			Action: serveAction,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

var renderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "builtin, b",
		Usage: "render a built-in scene instead of a file",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "override the output path from the scene file",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "number of render workers (0 = all CPUs)",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "render seed",
	},
	cli.BoolFlag{
		Name:  "quiet, q",
		Usage: "suppress the progress counter and the stats table",
	},
}

func setupLogging(ctx *cli.Context) {
	log.SetLevel(log.Notice)
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}
	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// resolveConfig picks the scene source for a render: the --builtin flag
// wins, otherwise the positional argument, defaulting to scene.json.
func resolveConfig(builtin, arg string) (*scene.Config, error) {
	if builtin != "" {
		return scene.Builtin(builtin)
	}
	path := arg
	if path == "" {
		path = "scene.json"
	}
	return scene.LoadConfig(path)
}

// outputPath applies the --out override to the scene's configured filename.
func outputPath(cfg *scene.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.Image.Filename
}

func renderAction(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() > 1 {
		return fmt.Errorf("at most one scene file argument expected, got %d", ctx.NArg())
	}

	cfg, err := resolveConfig(ctx.String("builtin"), ctx.Args().First())
	if err != nil {
		return err
	}

	sc, err := cfg.Scene()
	if err != nil {
		return err
	}
	sc.Preprocess()

	opts := renderer.Options{
		Width:      sc.Width,
		Height:     sc.Height,
		Sampler:    sc.Sampler,
		MaxDepth:   sc.MaxDepth,
		Seed:       ctx.Int64("seed"),
		NumWorkers: ctx.Int("workers"),
	}
	if !ctx.Bool("quiet") {
		opts.Progress = os.Stderr
	}

	rend := renderer.NewRenderer(sc.Camera, sc.Background, sc.Root, opts)
	frame, stats, err := rend.Render(context.Background())
	if err != nil {
		return err
	}

	out := outputPath(cfg, ctx.String("out"))
	encodeStart := time.Now()
	if err := writePNGFile(frame, out); err != nil {
		return err
	}

	stats.BuildTime = sc.BuildTime
	stats.EncodeTime = time.Since(encodeStart)
	stats.BVHNodes = sc.BVHStats.Nodes
	stats.BVHDepth = sc.BVHStats.Depth
	stats.BVHUnbounded = sc.BVHStats.Unbounded
	if !ctx.Bool("quiet") {
		logger.Noticef("wrote %s\n%s", out, stats.Table())
	}
	return nil
}

func writePNGFile(frame *renderer.Framebuffer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := frame.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func listScenesAction(ctx *cli.Context) error {
	setupLogging(ctx)
	for _, info := range scene.Builtins() {
		fmt.Printf("%-10s %s\n", info.Name, info.Description)
	}
	return nil
}

func exportSceneAction(ctx *cli.Context) error {
	setupLogging(ctx)
	if ctx.NArg() < 1 {
		return fmt.Errorf("missing built-in scene name")
	}
	name := ctx.Args().Get(0)
	cfg, err := scene.Builtin(name)
	if err != nil {
		return err
	}

	path := ctx.Args().Get(1)
	if path == "" {
		path = name + ".json"
	}
	if err := scene.SaveConfig(cfg, path); err != nil {
		return err
	}
	logger.Noticef("wrote %s", path)
	return nil
}

func generateAction(ctx *cli.Context) error {
	setupLogging(ctx)

	prompt := ctx.String("prompt")
	if prompt == "" {
		return fmt.Errorf("missing --prompt")
	}

	registry, err := scenegen.DefaultRegistry(context.Background())
	if err != nil {
		return err
	}

	model := ctx.String("model")
	if model == "" {
		model, err = registry.DefaultModel()
		if err != nil {
			return err
		}
	}
	provider, err := registry.ProviderFor(model)
	if err != nil {
		return err
	}

	gen := scenegen.NewGenerator(provider, model)
	cfg, err := gen.Generate(context.Background(), prompt)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if err := scene.SaveConfig(cfg, out); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	if ctx.Bool("render") {
		return renderGenerated(cfg)
	}
	return nil
}

// renderGenerated renders a freshly generated scene with default options.
func renderGenerated(cfg *scene.Config) error {
	sc, err := cfg.Scene()
	if err != nil {
		return err
	}
	sc.Preprocess()

	rend := renderer.NewRenderer(sc.Camera, sc.Background, sc.Root, renderer.Options{
		Width:    sc.Width,
		Height:   sc.Height,
		Sampler:  sc.Sampler,
		MaxDepth: sc.MaxDepth,
		Progress: os.Stderr,
	})
	frame, _, err := rend.Render(context.Background())
	if err != nil {
		return err
	}
	if err := writePNGFile(frame, cfg.Image.Filename); err != nil {
		return err
	}
	logger.Noticef("wrote %s", cfg.Image.Filename)
	return nil
}

func serveAction(ctx *cli.Context) error {
	setupLogging(ctx)
	s := server.NewServer(ctx.Int("port"), ctx.String("scene"))
	return s.Start()
}
