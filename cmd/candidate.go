package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
	"github.com/hr-partner/hrp/internal/listctl"
	"github.com/hr-partner/hrp/internal/normalize"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate",
	Short: "Manage candidates",
}

var candidateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List candidates with optional text and stage filters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("query")
		tab, _ := cmd.Flags().GetInt("tab")

		ctl := listctl.NewCandidateController(tk.client, tk.logger)
		if _, err := ctl.Load(cmd.Context()); err != nil {
			return err
		}

		candidates := ctl.Filter(query, tab)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPOSITION\tEMAIL\tSTAGE")
		for _, c := range candidates {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				c.ID, c.Name, c.Position, c.Email, c.StatusTitle())
		}
		return w.Flush()
	},
}

var candidateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		candidate, err := tk.client.GetCandidate(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", candidate.Name)
		fmt.Printf("Position:  %s\n", candidate.Position)
		fmt.Printf("Email:     %s\n", candidate.Email)
		if candidate.Phone != "" {
			fmt.Printf("Phone:     %s\n", candidate.Phone)
		}
		fmt.Printf("Stage:     %s\n", candidate.StatusTitle())
		fmt.Printf("Education: %s\n", candidate.EducationText())
		if skills := candidate.AllSkills(); len(skills) > 0 {
			fmt.Printf("Skills:    %s\n", strings.Join(skills, ", "))
		}
		for _, exp := range candidate.WorkExperience {
			fmt.Printf("\n%s, %s\n", exp.CompanyName, exp.Role)
			if period := normalize.WorkPeriod(exp.StartDate, exp.EndDate); period != "" {
				fmt.Printf("  %s\n", period)
			}
			if len(exp.Technologies) > 0 {
				fmt.Printf("  %s\n", strings.Join(exp.Technologies, ", "))
			}
		}
		if len(candidate.MatchedVacancies) > 0 {
			fmt.Println("\nMatched vacancies:")
			for _, m := range candidate.MatchedVacancies {
				fmt.Printf("  #%d %s\n", m.VacancyID, m.Title)
			}
		}
		return nil
	},
}

var candidateCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a candidate from a JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		candidate, err := candidateFromFlag(cmd)
		if err != nil {
			return err
		}

		ctl := listctl.NewCandidateController(tk.client, tk.logger)
		if err := ctl.Create(cmd.Context(), candidate); err != nil {
			return err
		}

		tk.logger.Info("candidate created", zap.String("name", candidate.Name))
		return nil
	},
}

var candidateUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a candidate from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		candidate, err := candidateFromFlag(cmd)
		if err != nil {
			return err
		}

		ctl := listctl.NewCandidateController(tk.client, tk.logger)
		if err := ctl.Update(cmd.Context(), id, candidate); err != nil {
			return err
		}

		tk.logger.Info("candidate updated", zap.Int64("id", id))
		return nil
	},
}

var candidateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		ctl := listctl.NewCandidateController(tk.client, tk.logger)
		if err := ctl.Delete(cmd.Context(), id); err != nil {
			return err
		}

		tk.logger.Info("candidate deleted", zap.Int64("id", id))
		return nil
	},
}

var candidateUploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a resume file for parsing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("file")
		email, _ := cmd.Flags().GetString("email")
		if path == "" {
			return fmt.Errorf("--file is required")
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening resume: %w", err)
		}
		defer file.Close()

		name := filepath.Base(path)
		if err := tk.client.UploadResume(cmd.Context(), name, file, email); err != nil {
			return err
		}

		tk.logger.Info("resume uploaded", zap.String("file", name))
		return nil
	},
}

var candidateSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> [stage-id]",
	Short: "Move a candidate to another pipeline stage",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		var stage string
		if len(args) == 2 {
			stage = args[1]
		} else {
			stage, err = askStage(cmd, tk)
			if err != nil {
				return err
			}
		}

		ctl := listctl.NewCandidateController(tk.client, tk.logger)
		if err := ctl.SetStatus(cmd.Context(), id, stage); err != nil {
			return err
		}

		tk.logger.Info("candidate stage changed", zap.Int64("id", id), zap.String("stage", stage))
		return nil
	},
}

func askStage(cmd *cobra.Command, tk *toolkit) (string, error) {
	statuses, err := tk.client.GetCandidateStatuses(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(statuses) == 0 {
		return "", fmt.Errorf("the backend reported no pipeline stages")
	}

	titles := make([]string, len(statuses))
	for i, s := range statuses {
		titles[i] = s.Title
	}

	prompt := promptui.Select{
		Label: "Pipeline stage",
		Items: titles,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(statuses[i].ID, 10), nil
}

func candidateFromFlag(cmd *cobra.Command) (*hrpartner.Candidate, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading candidate file: %w", err)
	}

	var candidate *hrpartner.Candidate
	if err := json.Unmarshal(data, &candidate); err != nil {
		return nil, fmt.Errorf("parsing candidate file: %w", err)
	}

	return candidate, nil
}

func init() {
	candidateListCmd.Flags().StringP("query", "q", "", "case-insensitive substring filter over name, position, role and skills")
	candidateListCmd.Flags().IntP("tab", "t", 0, "pipeline stage id, 0 for all")

	candidateCreateCmd.Flags().StringP("file", "f", "", "path to a JSON candidate payload")
	candidateUpdateCmd.Flags().StringP("file", "f", "", "path to a JSON candidate payload")

	candidateUploadCmd.Flags().StringP("file", "f", "", "path to the resume file (pdf, doc or docx)")
	candidateUploadCmd.Flags().StringP("email", "e", "", "candidate email to attach to the upload")

	candidateCmd.AddCommand(
		candidateListCmd,
		candidateShowCmd,
		candidateCreateCmd,
		candidateUpdateCmd,
		candidateDeleteCmd,
		candidateUploadCmd,
		candidateSetStatusCmd,
	)
	rootCmd.AddCommand(candidateCmd)
}
