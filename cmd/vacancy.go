package cmd

import (
	"encoding/json"
	"fmt"
	"os"
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

var vacancyCmd = &cobra.Command{
	Use:   "vacancy",
	Short: "Manage vacancies",
}

var vacancyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vacancies with optional text and status filters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("query")
		status, _ := cmd.Flags().GetString("status")

		tab := listctl.VacancyTabAll
		switch strings.ToLower(status) {
		case "":
		case "active":
			tab = listctl.VacancyTabActive
		case "closed":
			tab = listctl.VacancyTabClosed
		default:
			return fmt.Errorf("unknown status filter %q: want active or closed", status)
		}

		ctl := listctl.NewVacancyController(tk.client, tk.logger)
		if _, err := ctl.Load(cmd.Context()); err != nil {
			return err
		}

		vacancies := ctl.Filter(query, tab)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCOMPANY\tLOCATION\tSALARY\tSTATUS")
		for _, v := range vacancies {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				v.ID, v.Title, v.Company, v.Location, v.Salary(), v.StatusLabel())
		}
		return w.Flush()
	},
}

var vacancyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one vacancy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		vacancy, err := tk.client.GetVacancy(cmd.Context(), id)
		if err != nil {
			return err
		}

		fmt.Printf("%s @ %s\n", vacancy.Title, vacancy.Company)
		fmt.Printf("Location:   %s\n", vacancy.Location)
		fmt.Printf("Salary:     %s\n", vacancy.Salary())
		fmt.Printf("Experience: %s\n", vacancy.Experience)
		fmt.Printf("Status:     %s\n", vacancy.StatusLabel())
		if skills := vacancy.SkillList(); len(skills) > 0 {
			fmt.Printf("Skills:     %s\n", strings.Join(skills, ", "))
		}
		if vacancy.Description != "" {
			fmt.Printf("\n%s\n", vacancy.Description)
		}
		return nil
	},
}

var vacancyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a vacancy from a JSON file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		vacancy, err := vacancyFromFlag(cmd)
		if err != nil {
			return err
		}

		ctl := listctl.NewVacancyController(tk.client, tk.logger)
		if err := ctl.Create(cmd.Context(), vacancy); err != nil {
			return err
		}

		tk.logger.Info("vacancy created", zap.String("title", vacancy.Title))
		return nil
	},
}

var vacancyUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a vacancy from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		vacancy, err := vacancyFromFlag(cmd)
		if err != nil {
			return err
		}

		ctl := listctl.NewVacancyController(tk.client, tk.logger)
		if err := ctl.Update(cmd.Context(), id, vacancy); err != nil {
			return err
		}

		tk.logger.Info("vacancy updated", zap.Int64("id", id))
		return nil
	},
}

var vacancyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a vacancy",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		ctl := listctl.NewVacancyController(tk.client, tk.logger)
		if err := ctl.Delete(cmd.Context(), id); err != nil {
			return err
		}

		tk.logger.Info("vacancy deleted", zap.Int64("id", id))
		return nil
	},
}

var vacancyDuplicateCmd = &cobra.Command{
	Use:   "duplicate [id]",
	Short: "Create a copy of a vacancy, picked interactively when no id is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			tk      *toolkit
			vacancy *hrpartner.Vacancy
			err     error
		)

		if len(args) == 1 {
			var id int64
			tk, id, err = toolkitWithID(args[0])
			if err != nil {
				return err
			}

			vacancy, err = tk.client.GetVacancy(cmd.Context(), id)
			if err != nil {
				return err
			}
			if vacancy == nil {
				return fmt.Errorf("vacancy %d not found", id)
			}
		} else {
			tk, err = newToolkit()
			if err != nil {
				return err
			}

			vacancy, err = pickVacancy(cmd, tk)
			if err != nil {
				return err
			}
		}

		ctl := listctl.NewVacancyController(tk.client, tk.logger)
		if err := ctl.Duplicate(cmd.Context(), vacancy); err != nil {
			return err
		}

		tk.logger.Info("vacancy duplicated", zap.Int64("source_id", vacancy.ID))
		return nil
	},
}

// pickVacancy lets the user choose a vacancy from the full list by title.
func pickVacancy(cmd *cobra.Command, tk *toolkit) (*hrpartner.Vacancy, error) {
	vacancies, err := tk.client.GetVacancies(cmd.Context())
	if err != nil {
		return nil, err
	}
	if vacancies.Len() == 0 {
		return nil, fmt.Errorf("no vacancies to choose from")
	}

	prompt := promptui.Select{
		Label: "Vacancy",
		Items: vacancies.Titles(),
	}

	i, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return vacancies.Items[i], nil
}

var vacancyCloseCmd = &cobra.Command{
	Use:   "close <id>",
	Short: "Mark a vacancy closed",
	Args:  cobra.ExactArgs(1),
	RunE:  setVacancyStatus("closed"),
}

var vacancyReopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Mark a vacancy active again",
	Args:  cobra.ExactArgs(1),
	RunE:  setVacancyStatus("active"),
}

var vacancyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a vacancy from a job board URL",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		source, _ := cmd.Flags().GetString("source")
		url, _ := cmd.Flags().GetString("url")

		if source == "" {
			return fmt.Errorf("--source is required")
		}
		if url == "" {
			return fmt.Errorf("--url is required")
		}
		if !strings.HasPrefix(url, "http") {
			return fmt.Errorf("--url must start with http:// or https://")
		}

		if err := tk.client.ParseVacancy(cmd.Context(), source, url); err != nil {
			return err
		}

		tk.logger.Info("vacancy import requested", zap.String("source", source), zap.String("url", url))
		return nil
	},
}

var vacancyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Ask the backend AI to draft a vacancy from a brief",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		brief := &hrpartner.VacancyBrief{}
		brief.Position, _ = cmd.Flags().GetString("position")
		brief.Company, _ = cmd.Flags().GetString("company")
		brief.Location, _ = cmd.Flags().GetString("location")
		brief.Description, _ = cmd.Flags().GetString("description")
		brief.ExperienceYears, _ = cmd.Flags().GetInt("experience-years")

		skills, _ := cmd.Flags().GetString("skills")
		brief.RequiredSkills = normalize.Skills(skills)

		if brief.Position == "" || brief.Company == "" || len(brief.RequiredSkills) == 0 ||
			brief.ExperienceYears == 0 || brief.Location == "" {
			return fmt.Errorf("--position, --company, --skills, --experience-years and --location are required")
		}

		if err := tk.client.GenerateVacancy(cmd.Context(), brief); err != nil {
			return err
		}

		tk.logger.Info("vacancy generation requested", zap.String("position", brief.Position))
		return nil
	},
}

var vacancyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the dashboard counters",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tk, err := newToolkit()
		if err != nil {
			return err
		}

		stats, err := tk.client.GetVacancyStats(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Vacancies total\t%d\n", stats.TotalVacancies)
		fmt.Fprintf(w, "Vacancies active\t%d\n", stats.ActiveVacancies)
		fmt.Fprintf(w, "Candidates total\t%d\n", stats.TotalCandidates)
		fmt.Fprintf(w, "High-score candidates\t%d\n", stats.HighScoreCandidates)
		fmt.Fprintf(w, "Matches today\t%d\n", stats.MatchesToday)
		return w.Flush()
	},
}

func setVacancyStatus(status string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		tk, id, err := toolkitWithID(args[0])
		if err != nil {
			return err
		}

		ctl := listctl.NewVacancyController(tk.client, tk.logger)
		if err := ctl.SetStatus(cmd.Context(), id, status); err != nil {
			return err
		}

		tk.logger.Info("vacancy status changed", zap.Int64("id", id), zap.String("status", status))
		return nil
	}
}

func vacancyFromFlag(cmd *cobra.Command) (*hrpartner.Vacancy, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vacancy file: %w", err)
	}

	var vacancy *hrpartner.Vacancy
	if err := json.Unmarshal(data, &vacancy); err != nil {
		return nil, fmt.Errorf("parsing vacancy file: %w", err)
	}

	return vacancy, nil
}

func toolkitWithID(arg string) (*toolkit, int64, error) {
	tk, err := newToolkit()
	if err != nil {
		return nil, 0, err
	}

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("expected a numeric id, got %q", arg)
	}

	return tk, id, nil
}

func init() {
	vacancyListCmd.Flags().StringP("query", "q", "", "case-insensitive substring filter over titles")
	vacancyListCmd.Flags().StringP("status", "s", "", "status filter: active or closed")

	vacancyCreateCmd.Flags().StringP("file", "f", "", "path to a JSON vacancy payload")
	vacancyUpdateCmd.Flags().StringP("file", "f", "", "path to a JSON vacancy payload")

	vacancyImportCmd.Flags().String("source", "", "job board name, e.g. hh")
	vacancyImportCmd.Flags().String("url", "", "vacancy page URL")

	vacancyGenerateCmd.Flags().String("position", "", "position title")
	vacancyGenerateCmd.Flags().String("company", "", "company name")
	vacancyGenerateCmd.Flags().String("skills", "", "required skills, comma-separated")
	vacancyGenerateCmd.Flags().Int("experience-years", 0, "required years of experience")
	vacancyGenerateCmd.Flags().String("location", "", "location")
	vacancyGenerateCmd.Flags().String("description", "", "free-form notes for the generator")

	vacancyCmd.AddCommand(
		vacancyListCmd,
		vacancyShowCmd,
		vacancyCreateCmd,
		vacancyUpdateCmd,
		vacancyDeleteCmd,
		vacancyDuplicateCmd,
		vacancyCloseCmd,
		vacancyReopenCmd,
		vacancyImportCmd,
		vacancyGenerateCmd,
		vacancyStatsCmd,
	)
	rootCmd.AddCommand(vacancyCmd)
}
