package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mozartcheck/constants"
	"mozartcheck/db"
	"mozartcheck/eval"
	"mozartcheck/key"
	"mozartcheck/model"
	"mozartcheck/report"
	"mozartcheck/score"
	"mozartcheck/util"
	"mozartcheck/verdict"
)

var analyzeOut string
var analyzeSolver bool
var analyzeMax int

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", constants.DefaultReportFile, "report file to write")
	analyzeCmd.Flags().BoolVar(&analyzeSolver, "solver", false, "classify facts via the satisfiability backend")
	analyzeCmd.Flags().IntVar(&analyzeMax, "max", 0, "max number of files to analyze (0 = all)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir>",
	Short: "Analyzes every score in a directory",
	Long:  `Analyzes every score in a directory`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		analyze(args[0])
	},
}

func analyze(dir string) {
	strategy := eval.StrategyDirect
	if analyzeSolver {
		strategy = eval.StrategySolver
	}

	run := report.NewRun()

	fmt.Println("\nMOZART STYLE ANALYSIS")
	fmt.Println(strings.Repeat("=", 50))

	paths := util.GatherAllScorePaths(dir, analyzeMax)
	fmt.Printf("\nFound %v files in %v\n", len(paths), dir)

	for _, path := range paths {
		fmt.Printf("\nAnalyzing %v...\n", filepath.Base(path))
		report.Add(run, analyzeFile(path, strategy))
	}

	enrichMetadata(run)

	if err := report.Write(analyzeOut, run); err != nil {
		fmt.Printf("Could not write report: %v\n", err)
	} else {
		fmt.Printf("\nResults saved to %v\n", analyzeOut)
	}

	printSummary(run)
}

func analyzeFile(path string, strategy eval.Strategy) model.Analysis {
	filename := filepath.Base(path)

	s, err := score.ReadScoreFile(path)
	if err != nil {
		fmt.Printf("Error analyzing %v: %v\n", filename, err)
		return model.Analysis{Filename: filename, Error: err.Error()}
	}

	est := key.EstimateKey(s)
	v := verdict.VerifyPiece(s, strategy)

	a := model.Analysis{
		Filename:   filename,
		Key:        est.Name(),
		Measures:   len(s.Measures),
		Valid:      v.Valid,
		Violations: v.Violations,
	}
	if len(s.TimeSignatures) > 0 {
		a.TimeSignature = s.TimeSignatures[0].String()
	}

	fmt.Printf("Key: %v\n", a.Key)
	fmt.Printf("Time Signature: %v\n", a.TimeSignature)
	fmt.Printf("Measures: %v\n", a.Measures)
	if len(a.Violations) > 0 {
		fmt.Println("Potential style deviations found:")
		for _, violation := range a.Violations {
			fmt.Printf("  - %v\n", violation)
		}
	} else {
		fmt.Println("Consistent with Mozart's style")
	}

	return a
}

func enrichMetadata(run *model.RunResults) {
	var filenames []string
	for _, a := range run.Analyses {
		filenames = append(filenames, a.Filename)
	}
	metas, err := db.GetPieceMetadatas(filenames)
	if err != nil {
		fmt.Printf("Skipping metadata enrichment because: %v\n", err)
		return
	}
	for i := range run.Analyses {
		if m, ok := metas[run.Analyses[i].Filename]; ok {
			run.Analyses[i].Title = m.Title
			run.Analyses[i].Catalog = m.Catalog
		}
	}
}

func printSummary(run *model.RunResults) {
	fmt.Println("\nANALYSIS SUMMARY")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Total files analyzed: %v\n", run.TotalFiles)
	fmt.Printf("Files consistent with Mozart's style: %v\n", run.ValidFiles)
	fmt.Printf("Files with style deviations: %v\n", run.FilesWithViolations)

	if run.TotalFiles > 0 {
		conformance := float64(run.ValidFiles) / float64(run.TotalFiles) * 100
		fmt.Printf("\nOverall style conformance: %.1f%%\n", conformance)
	}
}
