package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/hr-partner/hrp/internal/hrpartner"
	"github.com/hr-partner/hrp/internal/matcher"
	"github.com/hr-partner/hrp/internal/score"
	"github.com/hr-partner/hrp/internal/util"
)

const commentPreviewLen = 400

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against a vacancy",
	Long: `Match a resume against a vacancy. The resume side is one of
--resume-file, --resume-url, --resume-text or --resume-id; the vacancy
side is one of --vacancy-url, --vacancy-text or --vacancy-id. Record ids
must be used on both sides or on neither.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		resume, err := resumeSource(cmd)
		if err != nil {
			return err
		}
		vacancy, err := vacancySource(cmd)
		if err != nil {
			return err
		}

		orch := matcher.New(tk.client, tk.logger)
		result, err := orch.Perform(cmd.Context(), resume, vacancy)
		if err != nil {
			return err
		}

		full, _ := cmd.Flags().GetBool("full")
		printMatch(result, full)
		if full {
			return nil
		}

		noPrompt, _ := cmd.Flags().GetBool("no-prompt")
		if noPrompt {
			return nil
		}

		return followUpMenu(orch)
	},
}

// followUpMenu offers the post-match actions. A prompt error (no terminal,
// interrupt) just ends the session.
func followUpMenu(orch *matcher.Orchestrator) error {
	for {
		prompt := promptui.Select{
			Label: "Next",
			Items: []string{"Full breakdown", "Recent matches", "Quit"},
		}

		i, _, err := prompt.Run()
		if err != nil {
			return nil
		}

		switch i {
		case 0:
			printMatch(orch.Current(), true)
		case 1:
			for _, m := range orch.Recent() {
				fmt.Printf("%s  %s\n", score.FormatPercent(m.Score), util.TruncateForLog(m.LLMComment, 60))
			}
		default:
			return nil
		}
	}
}

var matchShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one persisted match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		orch := matcher.New(tk.client, tk.logger)
		result, err := orch.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		printMatch(result, true)
		return nil
	},
}

func resumeSource(cmd *cobra.Command) (matcher.ResumeSource, error) {
	file, _ := cmd.Flags().GetString("resume-file")
	url, _ := cmd.Flags().GetString("resume-url")
	text, _ := cmd.Flags().GetString("resume-text")
	id, _ := cmd.Flags().GetInt64("resume-id")

	set := 0
	for _, ok := range []bool{file != "", url != "", text != "", id != 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return matcher.ResumeSource{}, fmt.Errorf("exactly one of --resume-file, --resume-url, --resume-text or --resume-id is required")
	}

	switch {
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return matcher.ResumeSource{}, fmt.Errorf("reading resume: %w", err)
		}
		email, _ := cmd.Flags().GetString("email")
		return matcher.ResumeFromFile(filepath.Base(file), content, email), nil
	case url != "":
		return matcher.ResumeFromURL(url), nil
	case text != "":
		return matcher.ResumeFromText(text), nil
	default:
		return matcher.ResumeFromRecord(id), nil
	}
}

func vacancySource(cmd *cobra.Command) (matcher.VacancySource, error) {
	url, _ := cmd.Flags().GetString("vacancy-url")
	text, _ := cmd.Flags().GetString("vacancy-text")
	id, _ := cmd.Flags().GetInt64("vacancy-id")

	set := 0
	for _, ok := range []bool{url != "", text != "", id != 0} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return matcher.VacancySource{}, fmt.Errorf("exactly one of --vacancy-url, --vacancy-text or --vacancy-id is required")
	}

	switch {
	case url != "":
		return matcher.VacancyFromURL(url), nil
	case text != "":
		return matcher.VacancyFromText(text), nil
	default:
		return matcher.VacancyFromRecord(id), nil
	}
}

func printMatch(result *hrpartner.MatchResult, full bool) {
	assessment := score.Classify(result.Score)

	fmt.Printf("Score:   %s (%s)\n", score.FormatPercent(result.Score), assessment.Band)
	fmt.Printf("Verdict: %s\n", verdictLine(result.Verdict, assessment.Verdict))

	if len(result.MatchedSkills) > 0 {
		fmt.Printf("Matched skills:   %s\n", strings.Join(result.MatchedSkills, ", "))
	}
	if len(result.UnmatchedSkills) > 0 {
		fmt.Printf("Unmatched skills: %s\n", strings.Join(result.UnmatchedSkills, ", "))
	}

	if full {
		for _, p := range result.Positives {
			fmt.Printf("+ %s\n", p)
		}
		for _, n := range result.Negatives {
			fmt.Printf("- %s\n", n)
		}
		if result.LLMComment != "" {
			fmt.Printf("\n%s\n", result.LLMComment)
		}
		if len(result.ClarifyingQuestions) > 0 {
			fmt.Println("\nQuestions for the candidate:")
			for _, q := range result.ClarifyingQuestions {
				fmt.Printf("  %s\n", q)
			}
		}
		return
	}

	if result.LLMComment != "" {
		fmt.Printf("\n%s\n", util.TruncateForLog(result.LLMComment, commentPreviewLen))
	}
}

// verdictLine prefers the backend's verdict and falls back to the local
// threshold classification when the backend sent none.
func verdictLine(remote, local string) string {
	if remote != "" {
		return remote
	}
	return local
}

func init() {
	matchCmd.Flags().String("resume-file", "", "path to a resume file (pdf, doc or docx)")
	matchCmd.Flags().String("resume-url", "", "hh.ru resume link")
	matchCmd.Flags().String("resume-text", "", "free-form resume text")
	matchCmd.Flags().Int64("resume-id", 0, "stored candidate id")
	matchCmd.Flags().String("email", "", "candidate email, required with --resume-file")

	matchCmd.Flags().String("vacancy-url", "", "hh.ru vacancy link")
	matchCmd.Flags().String("vacancy-text", "", "free-form vacancy text")
	matchCmd.Flags().Int64("vacancy-id", 0, "stored vacancy id")

	matchCmd.Flags().Bool("full", false, "print the full breakdown instead of a preview")
	matchCmd.Flags().Bool("no-prompt", false, "skip the interactive follow-up menu")

	matchCmd.AddCommand(matchShowCmd)
	rootCmd.AddCommand(matchCmd)
}
