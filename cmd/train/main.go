package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"newscheck/internal/classifier"
	"newscheck/internal/config"
	"newscheck/internal/models"
	"newscheck/internal/training"
)

var rootCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the headline classifier",
	Long:  "Fits the TF-IDF vectorizer and passive-aggressive model from labelled headline CSVs and writes the artifacts the server loads.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrain(cmd)
	},
}

func init() {
	rootCmd.Flags().String("fake", "fake.csv", "CSV of fake headlines (needs a title column)")
	rootCmd.Flags().String("true", "true.csv", "CSV of real headlines (needs a title column)")
	rootCmd.Flags().String("out", "model", "Output directory for the artifacts and manifest")
	rootCmd.Flags().Int64("seed", 42, "Seed for the split and the per-epoch shuffle")
	rootCmd.Flags().Int("max-iter", 50, "Maximum training epochs")
	rootCmd.Flags().Float64("max-df", 0.7, "Drop terms present in more than this fraction of documents")
	rootCmd.Flags().Float64("c", 1.0, "Passive-aggressive step cap")
	rootCmd.Flags().Float64("test-size", 0.2, "Fraction of samples held out for evaluation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTrain(cmd *cobra.Command) error {
	flags := cmd.Flags()
	fakePath, _ := flags.GetString("fake")
	truePath, _ := flags.GetString("true")
	outDir, _ := flags.GetString("out")
	seed, _ := flags.GetInt64("seed")
	maxIter, _ := flags.GetInt("max-iter")
	maxDF, _ := flags.GetFloat64("max-df")
	c, _ := flags.GetFloat64("c")
	testSize, _ := flags.GetFloat64("test-size")

	fake, err := training.LoadCSV(fakePath, models.ClassFake)
	if err != nil {
		return fmt.Errorf("load fake headlines: %w", err)
	}
	genuine, err := training.LoadCSV(truePath, models.ClassReal)
	if err != nil {
		return fmt.Errorf("load real headlines: %w", err)
	}
	cmd.Printf("Loaded %d fake and %d real headlines\n", len(fake), len(genuine))

	train, test, err := training.Split(append(fake, genuine...), testSize, seed)
	if err != nil {
		return err
	}

	vectorizer, err := training.FitTfidf(training.Texts(train), training.TfidfOptions{
		MaxDF:     maxDF,
		StopWords: training.EnglishStopWords,
	})
	if err != nil {
		return fmt.Errorf("fit vectorizer: %w", err)
	}

	xTrain, err := training.TransformAll(vectorizer, training.Texts(train))
	if err != nil {
		return err
	}
	xTest, err := training.TransformAll(vectorizer, training.Texts(test))
	if err != nil {
		return err
	}

	res, err := training.FitPassiveAggressive(xTrain, training.Labels(train), training.PAOptions{
		C:       c,
		MaxIter: maxIter,
		Seed:    seed,
	})
	if err != nil {
		return fmt.Errorf("fit model: %w", err)
	}
	if !res.Converged {
		cmd.Printf("Warning: no convergence after %d epochs\n", res.Epochs)
	}

	accuracy, err := training.Accuracy(res.Model, xTest, training.Labels(test))
	if err != nil {
		return err
	}
	cmd.Printf("Model Accuracy: %.2f\n", accuracy)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	manifest := &config.ModelManifest{
		Vectorizer: config.DefaultVectorizerFile,
		Model:      config.DefaultModelFile,
		Accuracy:   accuracy,
		TrainedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	vecPath, modelPath := manifest.ArtifactPaths(outDir)
	if err := classifier.SaveArtifacts(vectorizer, res.Model, vecPath, modelPath); err != nil {
		return err
	}
	if err := config.WriteManifest(filepath.Join(outDir, "manifest.yaml"), manifest); err != nil {
		return err
	}

	cmd.Printf("Wrote %s, %s (%d features, %d epochs)\n", vecPath, modelPath, vectorizer.Dim(), res.Epochs)
	return nil
}
