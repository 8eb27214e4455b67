package main

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"physstudio/internal/app"
	"physstudio/internal/catalog"
	"physstudio/internal/config"
	"physstudio/internal/sim"
	"physstudio/internal/studio"
)

var (
	configFile string
	scenePath  string

	stressBodies []int
	stressSteps  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "studio",
		Short: "interactive rigid-body physics sandbox",
		RunE:  runStudio,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "studio.yaml", "config file path (yaml)")
	rootCmd.Flags().StringVar(&scenePath, "scene", "", "scene file to open on startup")

	checkCmd := &cobra.Command{
		Use:   "check [scene.json]",
		Short: "validate a scene file without opening a window",
		Args:  cobra.ExactArgs(1),
		RunE:  checkScene,
	}

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "list the built-in body and system templates",
		RunE:  listTemplates,
	}

	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "benchmark headless stepping at various body counts",
		RunE:  runStress,
	}
	stressCmd.Flags().IntSliceVar(&stressBodies, "bodies", []int{100, 500, 1000, 2000}, "body counts to test")
	stressCmd.Flags().IntVar(&stressSteps, "steps", 600, "steps per test")

	rootCmd.AddCommand(checkCmd, templatesCmd, stressCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStudio(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configFile)
	if err != nil {
		return err
	}
	if scenePath != "" {
		cfg.Scene.Path = scenePath
	}
	return app.New(cfg).Run()
}

func checkScene(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc, err := studio.ParseSceneDocument(data)
	if err != nil {
		return err
	}

	s := studio.New()
	if err := s.Import(doc); err != nil {
		return err
	}
	fmt.Printf("%s: %d bodies, %d constraints, gravity %v, timestep %v\n",
		args[0], len(s.Bodies()), len(s.Constraints()),
		doc.WorldConfig.Gravity, doc.WorldConfig.Timestep)
	return nil
}

func listTemplates(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "BODY\tNAME\tSHAPE\tMASS\tCATEGORIES")
	for _, t := range catalog.Bodies() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%v\n", t.ID, t.Name, t.Shape, t.Mass, t.Categories)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SYSTEM\tNAME\tBODIES\tCONSTRAINTS\tCATEGORIES")
	for _, t := range catalog.Systems() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\n", t.ID, t.Name, len(t.Bodies), len(t.Constraints), t.Categories)
	}
	return w.Flush()
}

func runStress(cmd *cobra.Command, args []string) error {
	for _, count := range stressBodies {
		if err := stressWorld(count, stressSteps); err != nil {
			return err
		}
	}
	return nil
}

// stressWorld drops count spheres into a bounded box and times the stepper.
func stressWorld(count, steps int) error {
	rng := rand.New(rand.NewSource(42))
	w := sim.NewWorld(sim.DefaultWorldConfig())

	ground := sim.NewBody("ground", sim.ShapePlane)
	ground.Mass = 0
	ground.Size = rl.Vector3{X: 200, Z: 200}
	if err := w.AddBody(ground); err != nil {
		return err
	}

	spawn := float32(20) + float32(count)/50
	for i := 0; i < count; i++ {
		b := sim.NewBody(fmt.Sprintf("sphere-%d", i), sim.ShapeSphere)
		b.Size = rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
		b.Position = rl.Vector3{
			X: rng.Float32()*spawn - spawn/2,
			Y: 1 + rng.Float32()*spawn,
			Z: rng.Float32()*spawn - spawn/2,
		}
		if err := w.AddBody(b); err != nil {
			return err
		}
	}

	start := time.Now()
	for i := 0; i < steps; i++ {
		if err := w.Step(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	elapsed := time.Since(start)
	perStep := elapsed / time.Duration(steps)

	fmt.Printf("%5d bodies: %d steps in %8v (%v/step, %.1fx realtime)\n",
		count, steps, elapsed.Round(time.Millisecond),
		perStep.Round(time.Microsecond),
		float64(time.Second)/60/float64(perStep))
	return nil
}
