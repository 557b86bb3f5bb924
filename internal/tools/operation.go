// Package tools exposes the organizer operations as MCP tools.
package tools

import "fmt"

// Operation is one of the organizer operations reachable from the outside.
type Operation int

const (
	Analyze Operation = iota
	Organize
	CreateStructure
	FileInfo
	Cleanup
)

// Operations lists every operation in registration order.
var Operations = []Operation{Analyze, Organize, CreateStructure, FileInfo, Cleanup}

// Name returns the MCP tool name of the operation.
func (op Operation) Name() string {
	switch op {
	case Analyze:
		return "analyze_downloads"
	case Organize:
		return "organize_files"
	case CreateStructure:
		return "create_folder_structure"
	case FileInfo:
		return "get_file_info"
	case Cleanup:
		return "cleanup_empty_folders"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

func (op Operation) String() string {
	return op.Name()
}

// Mutating reports whether the operation may change the filesystem.
func (op Operation) Mutating() bool {
	switch op {
	case Organize, CreateStructure, Cleanup:
		return true
	default:
		return false
	}
}

// ParseOperation maps a tool name back to its Operation.
func ParseOperation(name string) (Operation, error) {
	for _, op := range Operations {
		if op.Name() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("herramienta desconocida: %s", name)
}
