package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentDeleteYes bool

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `Upload, list, delete and assign documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded documents",
	RunE:  runDocumentList,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a document",
	Long: `Uploads a file to the backend for indexing. If a class is active the
document is assigned to it automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentUpload,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete an uploaded document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

var documentAssignCmd = &cobra.Command{
	Use:   "assign [doc-id] [class-id]",
	Short: "Assign a document to a class",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentAssign,
}

var documentUnassignCmd = &cobra.Command{
	Use:   "unassign [doc-id] [class-id]",
	Short: "Remove a document from a class",
	Args:  cobra.ExactArgs(2),
	RunE:  runDocumentUnassign,
}

func init() {
	documentDeleteCmd.Flags().BoolVarP(&documentDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentAssignCmd)
	documentCmd.AddCommand(documentUnassignCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	if err := documentService.Refresh(ctx); err != nil {
		return fmt.Errorf("fetching documents: %w", err)
	}

	docs := documentService.List()
	if len(docs) == 0 {
		cmd.Println("No documents uploaded yet")
		return nil
	}

	for i := range docs {
		cmd.Printf("%s  %s\n", docs[i].ID, docs[i].Filename)
		cmd.Printf("    Size: %d bytes, chunks: %d\n", docs[i].Size, docs[i].ChunkCount)
		if len(docs[i].AssignedClasses) > 0 {
			cmd.Printf("    Classes: %v\n", docs[i].AssignedClasses)
		}
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.UploadPath(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("uploading: %w", err)
	}

	cmd.Printf("Uploaded %s as document %s\n", doc.Filename, doc.ID)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if !confirmAction(cmd, fmt.Sprintf("Delete document %s?", args[0]), documentDeleteYes) {
		cmd.Println("Aborted")
		return nil
	}

	ctx := context.Background()
	if err := documentService.Refresh(ctx); err != nil {
		return fmt.Errorf("fetching documents: %w", err)
	}
	if err := documentService.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", args[0])
	return nil
}

func runDocumentAssign(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	if err := documentService.Refresh(ctx); err != nil {
		return fmt.Errorf("fetching documents: %w", err)
	}
	if err := documentService.Assign(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("assigning document: %w", err)
	}

	cmd.Printf("Assigned document %s to class %s\n", args[0], args[1])
	return nil
}

func runDocumentUnassign(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()
	if err := documentService.Refresh(ctx); err != nil {
		return fmt.Errorf("fetching documents: %w", err)
	}
	if err := documentService.Unassign(ctx, args[0], args[1]); err != nil {
		return fmt.Errorf("unassigning document: %w", err)
	}

	cmd.Printf("Unassigned document %s from class %s\n", args[0], args[1])
	return nil
}
