package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeokHunPark/dicebox/internal/config"
	"github.com/SeokHunPark/dicebox/internal/dice"
	"github.com/SeokHunPark/dicebox/internal/history"
	"github.com/SeokHunPark/dicebox/internal/phys"
	"github.com/SeokHunPark/dicebox/internal/roll"
	"github.com/SeokHunPark/dicebox/internal/stats"
	"github.com/SeokHunPark/dicebox/internal/storage"
	"github.com/SeokHunPark/dicebox/internal/stream"
	"github.com/SeokHunPark/dicebox/internal/viz"
)

var (
	dataDir    string
	count      int
	seed       int64
	colorName  string
	configFile string
	preset     string
	save       bool
	jsonOut    bool
	noLedger   bool
	addr       string
	numRolls   int
	limit      int
	kindFilter string
	summary    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dicebox",
		Short: "physics dice roller",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dicebox", "data directory")

	rollCmd := &cobra.Command{
		Use:   "roll [kind]",
		Short: "roll dice headless and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRoll,
	}
	rollCmd.Flags().IntVar(&count, "count", 2, "number of dice")
	rollCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rollCmd.Flags().StringVar(&colorName, "color", "", "die color tag")
	rollCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rollCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	rollCmd.Flags().BoolVar(&save, "save", false, "record the roll for replay")
	rollCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as json")
	rollCmd.Flags().BoolVar(&noLedger, "no-ledger", false, "skip the results ledger")

	liveCmd := &cobra.Command{
		Use:   "live [kind]",
		Short: "roll dice with a live 3D view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&count, "count", 2, "number of dice")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().StringVar(&colorName, "color", "", "die color tag")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream rolls over websockets",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	serveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	serveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	serveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	statsCmd := &cobra.Command{
		Use:   "stats [kind]",
		Short: "roll many times and check fairness",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&numRolls, "rolls", 100, "number of rolls")
	statsCmd.Flags().IntVar(&count, "count", 1, "dice per roll")
	statsCmd.Flags().Int64Var(&seed, "seed", 42, "seed of the first roll")

	benchCmd := &cobra.Command{
		Use:   "bench [kind]",
		Short: "benchmark the simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBench,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "show past rolls",
		RunE:  runHistory,
	}
	historyCmd.Flags().StringVar(&kindFilter, "kind", "", "filter by die kind")
	historyCmd.Flags().IntVar(&limit, "limit", 20, "max rolls to show")
	historyCmd.Flags().BoolVar(&summary, "summary", false, "aggregate instead of listing")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved recordings",
		RunE:  listRecordings,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [roll_id]",
		Short: "replay a saved recording",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}

	exportCmd := &cobra.Command{
		Use:   "export [roll_id]",
		Short: "export recording metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRecording,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tCOUNT\tGRAVITY\tFRICTION\tRESTITUTION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%.2f\t%.2f\n",
					name, p.Kind, p.Count,
					p.Physics.Gravity, p.Physics.Friction, p.Physics.Restitution)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(rollCmd, liveCmd, serveCmd, statsCmd, benchCmd, historyCmd, listCmd, replayCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig folds preset, config file and flags into one Config.
// Precedence low to high: defaults, preset, config file, flags.
// kindOrDefault parses a die kind name, degrading to the default die on
// unknown names instead of failing the command. Matches the engine's
// RollNamed fallback.
func kindOrDefault(name string) dice.Kind {
	kind, err := dice.ParseKind(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unknown die kind %q, using %s\n", name, dice.DefaultKind)
		return dice.DefaultKind
	}
	return kind
}

func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Kind = args[0]
	}
	if f := cmd.Flags().Lookup("count"); f != nil && f.Changed {
		cfg.Count = count
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		if f != nil {
			cfg.Seed = seed
		} else {
			cfg.Seed = time.Now().UnixNano()
		}
	}
	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		cfg.Color = colorName
	}

	return cfg, nil
}

type rollOutput struct {
	ID         string  `json:"id,omitempty"`
	Kind       string  `json:"kind"`
	Count      int     `json:"count"`
	Seed       int64   `json:"seed"`
	Results    []int   `json:"results"`
	Total      int     `json:"total"`
	SettleTime float64 `json:"settle_time"`
	TimedOut   bool    `json:"timed_out"`
}

func runRoll(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	kind := kindOrDefault(cfg.Kind)
	params := cfg.Params()

	s := roll.NewSession(phys.NewWorld(params, cfg.Seed), nil)
	s.SetColor(cfg.Color)
	s.Roll(kind, cfg.Count)

	var frames []storage.Frame
	step := 0
	for !s.Step(params.FixedDt) {
		step++
		if save && step%2 == 0 {
			frames = append(frames, storage.Frame{Time: s.Elapsed(), Poses: s.Poses()})
		}
	}

	results := s.Results()
	total := 0
	for _, v := range results {
		total += v
	}
	out := rollOutput{
		Kind:       kind.String(),
		Count:      cfg.Count,
		Seed:       cfg.Seed,
		Results:    results,
		Total:      total,
		SettleTime: s.Elapsed(),
		TimedOut:   s.Elapsed() >= roll.Timeout,
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		out.ID, err = st.Save(storage.RollMetadata{
			Kind:       out.Kind,
			Count:      out.Count,
			Seed:       out.Seed,
			Color:      cfg.Color,
			Results:    results,
			SettleTime: out.SettleTime,
		}, frames)
		if err != nil {
			return err
		}
	}

	if !noLedger {
		if db, err := openHistory(); err == nil {
			defer db.Close()
			db.Insert(history.Entry{
				Kind:       out.Kind,
				Count:      out.Count,
				Seed:       out.Seed,
				Color:      cfg.Color,
				Results:    results,
				SettleTime: out.SettleTime,
				TimedOut:   out.TimedOut,
			})
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, v := range results {
		fmt.Printf("die %d: %d\n", i+1, v)
	}
	if len(results) > 1 {
		fmt.Printf("total: %d\n", total)
	}
	fmt.Printf("settled in %.2fs\n", out.SettleTime)
	if out.TimedOut {
		fmt.Println("(roll timed out before settling)")
	}
	if out.ID != "" {
		fmt.Printf("recording: %s\n", out.ID)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	kind := kindOrDefault(cfg.Kind)

	m := viz.NewModel(cfg.Params(), cfg.Seed, kind, cfg.Count, cfg.Color)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	srv := stream.NewServer(cfg.Params(), cfg.Seed)
	return srv.ListenAndServe(context.Background(), addr)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	kind := kindOrDefault(cfg.Kind)

	fmt.Printf("rolling %d x %d %s...\n", numRolls, cfg.Count, kind)
	start := time.Now()

	e := stats.NewEnsemble(cfg.Params(), kind, cfg.Count, numRolls, cfg.Seed)
	outcomes, err := e.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	faces := stats.Faces(outcomes)
	counts := stats.Distribution(faces, kind.Sides())

	fmt.Printf("completed in %v\n\n", elapsed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FACE\tCOUNT\tSHARE")
	for i, c := range counts {
		share := 0.0
		if len(faces) > 0 {
			share = float64(c) / float64(len(faces)) * 100
		}
		fmt.Fprintf(w, "%d\t%d\t%.1f%%\n", i+1, c, share)
	}
	w.Flush()

	fmt.Printf("\nchi-square: %.3f\n", stats.ChiSquare(counts))
	if stats.Fair(counts) {
		fmt.Println("verdict: consistent with a fair die (p > 0.05)")
	} else {
		fmt.Println("verdict: NOT consistent with a fair die (p < 0.05)")
	}

	t := stats.SummarizeTimes(stats.SettleTimes(outcomes))
	fmt.Printf("\nsettle time: mean %.2fs, sd %.2fs, range %.2fs..%.2fs\n",
		t.Mean, t.StdDev, t.Min, t.Max)

	timedOut := 0
	for _, o := range outcomes {
		if o.TimedOut {
			timedOut++
		}
	}
	if timedOut > 0 {
		fmt.Printf("timed out: %d/%d rolls\n", timedOut, len(outcomes))
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	kind := kindOrDefault(cfg.Kind)
	params := cfg.Params()

	const benchRolls = 20
	counts := []int{1, 2, 5, 10}

	fmt.Printf("benchmarking %s (%d rolls per row)\n\n", kind, benchRolls)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DICE\tAVG SETTLE\tWALL TIME\tSTEPS/SEC")

	for _, n := range counts {
		start := time.Now()
		e := stats.NewEnsemble(params, kind, n, benchRolls, 42)
		outcomes, err := e.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		simTime := 0.0
		for _, o := range outcomes {
			simTime += o.SettleTime
		}
		steps := simTime / params.FixedDt
		t := stats.SummarizeTimes(stats.SettleTimes(outcomes))

		fmt.Fprintf(w, "%d\t%.2fs\t%v\t%.0f\n",
			n, t.Mean, elapsed.Round(time.Millisecond), steps/elapsed.Seconds())
	}
	return w.Flush()
}

func openHistory() (*history.DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return history.Open(filepath.Join(dataDir, "history.db"))
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	if summary {
		s, err := db.Summarize(kindFilter)
		if err != nil {
			return err
		}
		fmt.Printf("rolls: %d\n", s.Rolls)
		fmt.Printf("dice: %d\n", s.Dice)
		if s.Rolls > 0 {
			fmt.Printf("total: mean %.2f, range %d..%d\n", s.MeanTotal, s.MinTotal, s.MaxTotal)
			fmt.Printf("timed out: %d\n", s.TimedOut)
		}
		return nil
	}

	entries, err := db.List(kindFilter, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no rolls recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tRESULTS\tTOTAL\tSETTLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%.2fs\n",
			e.RolledAt.Format("2006-01-02 15:04:05"), e.Kind, e.Results, e.Total, e.SettleTime)
	}
	return w.Flush()
}

func listRecordings(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rolls, err := st.List()
	if err != nil {
		return err
	}
	if len(rolls) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tKIND\tCOUNT\tRESULTS\tFRAMES")
	for _, r := range rolls {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%d\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Kind, r.Count, r.Results, r.Frames)
	}
	return w.Flush()
}

func runReplay(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("recording %s has no frames (rolled without --save?)", args[0])
	}

	m := viz.NewReplayModel(meta, frames, phys.DefaultParams())
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func exportRecording(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
