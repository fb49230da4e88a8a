package whois_tools

import (
	"regexp"
	"strings"
)

// CommentStyle selects which line-comment markers StripLineComments removes.
type CommentStyle int

const (
	// CommentINI removes lines starting with ";" or "#".
	CommentINI CommentStyle = iota
	// CommentSlash removes lines starting with "//".
	CommentSlash
)

var (
	reIniComment   = regexp.MustCompile(`(?m)^(?:;|#)[^\n]+\n?`)
	reSlashComment = regexp.MustCompile(`(?m)^//[^\n]+\n?`)

	// Registry meta comments. Indented markers count too, otherwise the
	// whitespace collapse would expose them and a second cleaning pass would
	// strip more than the first.
	reMetaComment = regexp.MustCompile(`(?m)^[^\S\n]*[#%][^\n]+\n?`)

	// Everything from the first notice marker to the end of the text.
	reInformational = regexp.MustCompile(`(?is)(?:>>>?|Terms\s+of\s+Use\s*:\s+Users?\s+accessing|URL\s+of\s+the\s+ICANN\s+WHOIS).*`)

	reLeadingSpace     = regexp.MustCompile(`(?m)^\s+`)
	reNewlineIndent    = regexp.MustCompile(`(\n) +`)
	reHorizontalSpaces = regexp.MustCompile(`[^\S\n]+`)
	reBlankLines       = regexp.MustCompile(`\n{3,}`)
	reWhitespaceRun    = regexp.MustCompile(`\s+`)
)

// StripLineComments removes whole-line comments of the given style.
// The input is trimmed first; blank input is returned as is.
func StripLineComments(data string, style CommentStyle) string {
	data = strings.TrimSpace(data)
	if data == "" {
		return data
	}
	if style == CommentSlash {
		return reSlashComment.ReplaceAllString(data, "")
	}
	return reIniComment.ReplaceAllString(data, "")
}

// StripIniComments is StripLineComments with CommentINI.
func StripIniComments(data string) string {
	return StripLineComments(data, CommentINI)
}

// StripSlashComments is StripLineComments with CommentSlash.
func StripSlashComments(data string) string {
	return StripLineComments(data, CommentSlash)
}

// CollapseWhitespace normalizes line endings and tabs and removes leading
// whitespace from every line. Without allowBlankLine all blank lines go away;
// with it, runs of blank lines shrink to a single one and inner runs of
// spaces shrink to one space.
func CollapseWhitespace(data string, allowBlankLine bool) string {
	data = strings.NewReplacer("\r\n", "\n", "\t", " ").Replace(data)
	if !allowBlankLine {
		data = reLeadingSpace.ReplaceAllString(data, "")
		data = reNewlineIndent.ReplaceAllString(data, "$1")
		return strings.TrimSpace(data)
	}

	data = reHorizontalSpaces.ReplaceAllString(data, " ")
	data = reNewlineIndent.ReplaceAllString(data, "$1")
	data = reBlankLines.ReplaceAllString(data, "\n\n")
	return strings.TrimSpace(data)
}

// StripMetaComments drops carriage returns and the "#" / "%" comment lines
// registries put around the record.
func StripMetaComments(data string) string {
	data = strings.ReplaceAll(data, "\r", "")
	data = reMetaComment.ReplaceAllString(data, "")
	return strings.TrimSpace(data)
}

// StripInformationalBoilerplate cuts the text at the first ">>>" notice,
// terms-of-use preamble or ICANN WHOIS information header.
func StripInformationalBoilerplate(data string) string {
	return reInformational.ReplaceAllString(data, "")
}

// CleanUnwantedWhoIsResult reduces a raw response to its substantive record.
// The last-database-update line is looked up in the raw text, since it
// usually sits inside the stripped notice, and appended to the result unless
// the record already carries one.
func CleanUnwantedWhoIsResult(data string) string {
	if strings.TrimSpace(data) == "" {
		return ""
	}

	clean := stripToRecord(data)
	if clean == "" {
		return ""
	}

	if _, inRecord := ExtractLastDatabaseUpdate(clean); !inRecord {
		if updated, ok := ExtractLastDatabaseUpdate(data); ok {
			// an update line that itself looks like a notice would be cut
			// again on the next pass
			if withUpdate := clean + "\n" + updated; stripToRecord(withUpdate) == withUpdate {
				clean = withUpdate
			}
		}
	}
	return clean
}

// stripToRecord repeats the comment, notice and whitespace passes until the
// text stops changing. Trimming can move a comment marker to the start of
// the text, which the next pass then removes.
func stripToRecord(data string) string {
	for {
		clean := CollapseWhitespace(StripInformationalBoilerplate(StripMetaComments(data)), false)
		if clean == data {
			return clean
		}
		data = clean
	}
}

// squashWhitespace replaces every whitespace run by its last character.
func squashWhitespace(data string) string {
	return reWhitespaceRun.ReplaceAllStringFunc(data, func(run string) string {
		return run[len(run)-1:]
	})
}
