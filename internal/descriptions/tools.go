package descriptions

// Tool descriptions with practical examples, shown to MCP clients

const (
	// Naming tools
	DeriveFilenameDescription = `Derive the EKHO filename of a weekly timesheet from its text.

**When to use:** You have the text of a timesheet (for example copied out of a PDF) and need the name the file should be stored under.

**What it does:** Drops a leading "Period N Starts" line, reads the person from the "Name:" line, collects every date after the first "date" header and builds:
  <NAME> EKHO - <CODE>_<MMDD first>-<MMDD last> - WE25<MMDD day before last>.pdf

**Examples:**
• "Name: Kovács János" with dates 2025-03-05 .. 2025-03-10 → "KOVACS JANOS EKHO - KOVA_0305-0310 - WE250309.pdf"
• When the first word is a known first name it moves after the family name: "János Kovács" → "KOVACS JANOS"

**Errors:** missing "Name:" label, missing "date" header, or no valid date after the header.`

	ExtractDatesDescription = `List the calendar dates found in a piece of text, sorted ascending.

**When to use:** Checking which dates a timesheet will contribute to its filename.

**Formats recognised:** YYYY.MM.DD, and D.M.YY / D.M.YYYY tried month-first then day-first. Separators may be ".", "/" or "-". Impossible dates (2025-02-30) are ignored.

**Examples:**
• "2025.03.05 and 03/10/2025" → 2025-03-05, 2025-03-10
• "25.03.2025" → 2025-03-25 (25 is not a month, so day-first applies)`

	ParseNameDescription = `Canonicalise a person's name the way filenames use it.

**When to use:** Checking how a name line will appear in the filename.

**What it does:** Cuts the text at "Company", moves a leading known first name behind the family name, strips accents and uppercases.

**Examples:**
• "János Kovács Company Kft." → "KOVACS JANOS"
• "Kovács János" → "KOVACS JANOS"`

	// Batch tools
	ProcessFolderDescription = `Unlock, clean up and rename every timesheet PDF in a folder.

**When to use:** A folder of freshly downloaded weekly timesheets needs to be filed.

**What it does, per PDF:** removes password and permission restrictions, deletes the weekly certification page, derives the filename from the text of the first half of the document and renames the file in place. A failing document is reported and skipped; the others are still processed.

**Parameters:**
• directory: folder to process (defaults to the configured folder)
• dry_run: "true" derives names from scratch copies and leaves every file untouched

**Best practices:** Run with dry_run first on an unfamiliar folder.`

	FindPDFsDescription = `List the PDF files a folder run would process.

**When to use:** Before processing a folder, to see which files are picked up. Files that are empty, too large or not named *.pdf are skipped.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"ekho_derive_filename": DeriveFilenameDescription,
	"ekho_extract_dates":   ExtractDatesDescription,
	"ekho_parse_name":      ParseNameDescription,
	"ekho_process_folder":  ProcessFolderDescription,
	"ekho_find_pdfs":       FindPDFsDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
