package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool returns the MCP definition of op.
func (op Operation) Tool() mcp.Tool {
	switch op {
	case Analyze:
		return mcp.NewTool(
			op.Name(),
			mcp.WithDescription("Analiza los archivos en la carpeta de descargas y muestra estadísticas"),
			mcp.WithBoolean("show_details",
				mcp.Description("Mostrar detalles de cada archivo"),
				mcp.DefaultBool(false),
			),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:          "Analyze Downloads",
				ReadOnlyHint:   boolPtr(true),
				IdempotentHint: boolPtr(true),
			}),
		)
	case Organize:
		return mcp.NewTool(
			op.Name(),
			mcp.WithDescription("Organiza los archivos de descargas en carpetas por categoría"),
			mcp.WithBoolean("dry_run",
				mcp.Description("Simular la organización sin mover archivos"),
				mcp.DefaultBool(true),
			),
			mcp.WithArray("categories",
				mcp.Description("Categorías específicas a organizar (opcional)"),
				mcp.Items(map[string]any{"type": "string"}),
			),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:           "Organize Files",
				DestructiveHint: boolPtr(false),
				IdempotentHint:  boolPtr(false),
			}),
		)
	case CreateStructure:
		return mcp.NewTool(
			op.Name(),
			mcp.WithDescription("Crea la estructura de carpetas para organización"),
			mcp.WithString("base_folder",
				mcp.Description("Carpeta base donde crear la estructura"),
			),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:           "Create Folder Structure",
				DestructiveHint: boolPtr(false),
				IdempotentHint:  boolPtr(true),
			}),
		)
	case FileInfo:
		return mcp.NewTool(
			op.Name(),
			mcp.WithDescription("Obtiene información detallada de un archivo específico"),
			mcp.WithString("filename",
				mcp.Description("Nombre del archivo a analizar"),
				mcp.Required(),
			),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:          "Get File Info",
				ReadOnlyHint:   boolPtr(true),
				IdempotentHint: boolPtr(true),
			}),
		)
	case Cleanup:
		return mcp.NewTool(
			op.Name(),
			mcp.WithDescription("Elimina carpetas vacías de la estructura organizada"),
			mcp.WithBoolean("dry_run",
				mcp.Description("Simular la limpieza sin eliminar carpetas"),
				mcp.DefaultBool(true),
			),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:           "Cleanup Empty Folders",
				DestructiveHint: boolPtr(true),
				IdempotentHint:  boolPtr(true),
			}),
		)
	default:
		panic("tools: no definition for " + op.String())
	}
}

func boolPtr(b bool) *bool {
	return &b
}
