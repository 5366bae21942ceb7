package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/inkforge/inkforge/internal/style"
	"github.com/spf13/cobra"
)

var (
	projectListJSON    bool
	projectCreateGenre string
)

var projectCmd = &cobra.Command{
	Use:     "project",
	GroupID: GroupLibrary,
	Short:   "Manage the local project library",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects, most recently updated first",
	RunE:  runProjectList,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project with default writing settings",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

func init() {
	projectListCmd.Flags().BoolVar(&projectListJSON, "json", false, "Output as JSON")
	projectCreateCmd.Flags().StringVar(&projectCreateGenre, "genre", "", "Project genre")
	projectCmd.AddCommand(projectListCmd, projectCreateCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	projects, err := a.store.ListProjects()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if projectListJSON {
		data, err := json.Marshal(projects)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, style.Dim.Render("No projects yet. Create one with `inkforge project create <name>`."))
		return nil
	}

	for _, p := range projects {
		line := fmt.Sprintf("%s  %s", style.Bold.Render(p.Name), style.Dim.Render(p.ID))
		var tags []string
		if p.Genre != "" {
			tags = append(tags, p.Genre)
		}
		tags = append(tags, p.Status)
		fmt.Fprintf(out, "%s  [%s]\n", line, strings.Join(tags, ", "))
	}
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	p, err := a.store.CreateProject(args[0], projectCreateGenre)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Created project %s %s\n",
		style.SuccessPrefix, style.Bold.Render(p.Name), style.Dim.Render("("+p.ID+")"))
	return nil
}
