package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ragscholar/scholar-cli/internal/core/domain"
)

var (
	classSubject     string
	classDescription string
	classDocuments   []string
	classDeleteYes   bool
)

var classCmd = &cobra.Command{
	Use:   "class",
	Short: "Manage classes",
	Long:  `Create, edit, select and delete classes: topical groupings of documents and chat sessions.`,
}

var classListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all classes",
	RunE:  runClassList,
}

var classCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a class and select it",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassCreate,
}

var classEditCmd = &cobra.Command{
	Use:   "edit [class-id] [name]",
	Short: "Edit a class",
	Args:  cobra.ExactArgs(2),
	RunE:  runClassEdit,
}

var classDeleteCmd = &cobra.Command{
	Use:   "delete [class-id]",
	Short: "Delete a class and its sessions",
	Long: `Deletes a class, its chat sessions and its cached conversation.
Documents assigned to the class are kept; only the association is removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassDelete,
}

var classSelectCmd = &cobra.Command{
	Use:   "select [class-id]",
	Short: "Make a class the active selection",
	Long:  `Selects a class as the conversation context. Pass no argument to clear the selection.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClassSelect,
}

var classAssignCmd = &cobra.Command{
	Use:   "assign [class-id]",
	Short: "Set a class's documents",
	Long: `Converges the class's document set to exactly the ids given with --document.
Documents not listed are unassigned.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassAssign,
}

var classReindexCmd = &cobra.Command{
	Use:   "reindex [class-id]",
	Short: "Rebuild a class's retrieval index",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassReindex,
}

func init() {
	classCreateCmd.Flags().StringVarP(&classSubject, "subject", "s", string(domain.SubjectOther), "Subject area (science, math, history, language, arts, engineering, other)")
	classCreateCmd.Flags().StringVarP(&classDescription, "description", "d", "", "Class description")
	classCreateCmd.Flags().StringSliceVar(&classDocuments, "document", nil, "Document id to assign (repeatable)")
	classEditCmd.Flags().StringVarP(&classSubject, "subject", "s", "", "Subject area")
	classEditCmd.Flags().StringVarP(&classDescription, "description", "d", "", "Class description")
	classAssignCmd.Flags().StringSliceVar(&classDocuments, "document", nil, "Document id to assign (repeatable)")
	classDeleteCmd.Flags().BoolVarP(&classDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	classCmd.AddCommand(classListCmd)
	classCmd.AddCommand(classCreateCmd)
	classCmd.AddCommand(classEditCmd)
	classCmd.AddCommand(classDeleteCmd)
	classCmd.AddCommand(classSelectCmd)
	classCmd.AddCommand(classAssignCmd)
	classCmd.AddCommand(classReindexCmd)
	rootCmd.AddCommand(classCmd)
}

func runClassList(cmd *cobra.Command, _ []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	classes, err := classService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing classes: %w", err)
	}

	if len(classes) == 0 {
		cmd.Println("No classes yet. Create one with: scholar class create")
		return nil
	}

	activeID := ""
	if active := classService.Active(); active != nil {
		activeID = active.ID
	}

	for i := range classes {
		marker := " "
		if classes[i].ID == activeID {
			marker = "*"
		}
		cmd.Printf("%s %s  %s (%s)\n", marker, classes[i].ID, classes[i].Name, classes[i].Subject)
		if classes[i].Description != "" {
			cmd.Printf("    %s\n", classes[i].Description)
		}
		cmd.Printf("    Documents: %d\n", len(classes[i].Documents))
	}
	return nil
}

func runClassCreate(cmd *cobra.Command, args []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	class, report, err := classService.Create(context.Background(),
		args[0], domain.Subject(classSubject), classDescription, classDocuments)
	if err != nil {
		return fmt.Errorf("creating class: %w", err)
	}

	cmd.Printf("Created class %s (%s) and made it active\n", class.Name, class.ID)
	printAssignmentReport(cmd, report)
	return nil
}

func runClassEdit(cmd *cobra.Command, args []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	err := classService.Edit(context.Background(), args[0], args[1],
		domain.Subject(classSubject), classDescription)
	if err != nil {
		return fmt.Errorf("editing class: %w", err)
	}

	cmd.Printf("Updated class %s\n", args[0])
	return nil
}

func runClassDelete(cmd *cobra.Command, args []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	if !confirmAction(cmd, fmt.Sprintf("Delete class %s and all its sessions?", args[0]), classDeleteYes) {
		cmd.Println("Aborted")
		return nil
	}

	if err := classService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting class: %w", err)
	}

	cmd.Printf("Deleted class %s\n", args[0])
	return nil
}

func runClassSelect(cmd *cobra.Command, args []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	if err := classService.Select(context.Background(), id); err != nil {
		return fmt.Errorf("selecting class: %w", err)
	}

	if id == "" {
		cmd.Println("Cleared class selection")
	} else {
		cmd.Printf("Selected class %s\n", id)
	}
	return nil
}

func runClassAssign(cmd *cobra.Command, args []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	report, err := classService.AssignDocuments(context.Background(), args[0], classDocuments)
	if err != nil {
		return fmt.Errorf("assigning documents: %w", err)
	}

	cmd.Printf("Class %s: %d added, %d removed\n", args[0], len(report.Added), len(report.Removed))
	printAssignmentReport(cmd, report)
	return nil
}

func runClassReindex(cmd *cobra.Command, args []string) error {
	if classService == nil {
		return errors.New("class service not configured")
	}

	if err := classService.Reindex(context.Background(), args[0]); err != nil {
		return fmt.Errorf("reindexing class: %w", err)
	}

	cmd.Printf("Reindexing class %s\n", args[0])
	return nil
}

// printAssignmentReport lists per-document failures, if any.
func printAssignmentReport(cmd *cobra.Command, report *domain.AssignmentReport) {
	if report == nil || report.Ok() {
		return
	}
	cmd.Printf("Warning: %d assignment change(s) failed:\n", len(report.Failures))
	for i := range report.Failures {
		cmd.Printf("  %s %s: %v\n",
			report.Failures[i].Op,
			strings.TrimSpace(report.Failures[i].DocumentID),
			report.Failures[i].Err)
	}
}
