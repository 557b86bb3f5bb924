package category

// DefaultRules returns the built-in category rules, in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "Documentos",
			Extensions:  StringList{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt"},
			Description: "Archivos de documentos y textos",
		},
		{
			Name:        "Imágenes",
			Extensions:  StringList{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"},
			Description: "Archivos de imágenes",
		},
		{
			Name:        "Videos",
			Extensions:  StringList{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"},
			Description: "Archivos de video",
		},
		{
			Name:        "Audio",
			Extensions:  StringList{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma"},
			Description: "Archivos de audio",
		},
		{
			Name:        "Programación",
			Extensions:  StringList{".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".sql"},
			Description: "Archivos de código fuente",
		},
		{
			Name:        "Comprimidos",
			Extensions:  StringList{".zip", ".rar", ".7z", ".tar", ".gz"},
			Description: "Archivos comprimidos",
		},
		{
			Name:        "Ejecutables",
			Extensions:  StringList{".exe", ".msi", ".dmg", ".deb", ".rpm"},
			Description: "Archivos ejecutables e instaladores",
		},
		{
			Name:        "Hojas de cálculo",
			Extensions:  StringList{".xlsx", ".xls", ".csv", ".ods"},
			Description: "Archivos de hojas de cálculo",
		},
	}
}

// DefaultTable returns a Table built from DefaultRules.
func DefaultTable() *Table {
	return NewTable(DefaultRules())
}
