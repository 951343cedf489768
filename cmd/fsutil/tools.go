package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// ListFilesInput contains parameters for listing files.
	ListFilesInput struct {
		Root      string   `json:"root" jsonschema:"Directory to walk recursively"`
		Extension string   `json:"extension,omitempty" jsonschema:"Keep only paths ending with this text, e.g. '.go' (plain suffix match)"`
		Ignore    []string `json:"ignore,omitempty" jsonschema:"Extra doublestar patterns to skip, relative to root"`
	}

	// MoveInput contains parameters for moving a path.
	MoveInput struct {
		Source      string `json:"source" jsonschema:"Path to move"`
		Destination string `json:"destination" jsonschema:"Target path; must not exist"`
	}

	// RenameInput contains parameters for renaming a path in place.
	RenameInput struct {
		Path    string `json:"path" jsonschema:"Path to rename"`
		NewName string `json:"newName" jsonschema:"New file name (no directory part)"`
	}

	// ChangeExtensionInput contains parameters for changing a file extension.
	ChangeExtensionInput struct {
		Path      string `json:"path" jsonschema:"File to rename"`
		Extension string `json:"extension" jsonschema:"New extension without the dot, e.g. 'json'"`
		DryRun    bool   `json:"dryRun,omitempty" jsonschema:"Only report the new path (default: false)"`
	}

	// PathInput is the input of tools taking a single path.
	PathInput struct {
		Path string `json:"path" jsonschema:"File or directory path"`
	}

	// SizeInput contains parameters for measuring a path.
	SizeInput struct {
		Path  string `json:"path" jsonschema:"File or directory to measure"`
		Human bool   `json:"human,omitempty" jsonschema:"Include a human readable size (default: false)"`
	}

	// MkdirInput contains parameters for creating a directory.
	MkdirInput struct {
		Path   string `json:"path" jsonschema:"Directory to create, with missing parents"`
		Parent bool   `json:"parent,omitempty" jsonschema:"Create the parent of path instead (default: false)"`
	}

	// DeleteInput contains parameters for deleting a path.
	DeleteInput struct {
		Path    string `json:"path" jsonschema:"File or directory to delete recursively"`
		Confirm string `json:"confirm" jsonschema:"Must be set to 'yes' to confirm deletion"`
	}

	// TempDirInput contains parameters for creating a temp directory.
	TempDirInput struct {
		Prefix string `json:"prefix,omitempty" jsonschema:"Name prefix (default from config)"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_files",
		Description: "Recursively list regular files under a directory. Hidden entries are skipped. extension is a plain suffix match.",
	}, handleListFiles)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move",
		Description: "Move a file or directory tree to a new path. Fails if the destination exists.",
	}, handleMove)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "rename",
		Description: "Rename a file or directory, keeping it in the same parent directory.",
	}, handleRename)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "change_extension",
		Description: "Replace the extension of a file (data.txt -> data.json). Use dryRun to preview.",
	}, handleChangeExtension)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "size",
		Description: "Size in bytes of a file, or total size of the non-hidden files under a directory. Unreadable entries count as zero.",
	}, handleSize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "exists",
		Description: "Check whether a file or directory exists.",
	}, handleExists)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mkdir",
		Description: "Create a directory and any missing parents. Succeeds if it already exists.",
	}, handleMkdir)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete",
		Description: "Delete a file or directory tree, including read-only directories. Requires confirm='yes' for safety.",
	}, handleDelete)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "temp_dir",
		Description: "Create a new empty, uniquely named directory. With a server root it is created directly under the root and its path is relative to it; otherwise it is in the system temp area. It is not removed automatically.",
	}, handleTempDir)
}
