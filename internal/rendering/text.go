package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DetailsText reads rendered detail-region markup and returns a plain-text outline of it,
// one card per block. Uninjected skills are marked with a leading "-" and trained levels
// are drawn as "#" (trained) and "." (untrained).
func DetailsText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", &RenderError{Target: "details", Message: "failed to parse markup", Cause: err}
	}

	var sb strings.Builder
	doc.Find(".card").Each(func(i int, card *goquery.Selection) {
		if i > 0 {
			sb.WriteString("\n")
		}
		header := card.Find(".card-header")
		sb.WriteString(fmt.Sprintf("%s %s\n",
			collapse(header.Find(".group-name").Text()),
			collapse(header.Find(".group-counts").Text())))
		sb.WriteString(fmt.Sprintf("  %s\n", collapse(card.Find(".group-summary").Text())))

		card.Find(".skill-row").Each(func(_ int, row *goquery.Selection) {
			marker := " "
			if row.Find("strike").Length() > 0 {
				marker = "-"
			}

			var cells strings.Builder
			row.Find(".skill-level i").Each(func(_ int, cell *goquery.Selection) {
				if cell.HasClass("fas") {
					cells.WriteString("#")
				} else {
					cells.WriteString(".")
				}
			})

			line := fmt.Sprintf("  %s %s  %s", marker,
				collapse(row.Find(".skill-name").Text()),
				collapse(row.Find(".skill-points").Text()))
			if cells.Len() > 0 {
				line += "  [" + cells.String() + "]"
			}
			sb.WriteString(line + "\n")
		})
	})

	return sb.String(), nil
}

// collapse trims text and folds inner whitespace runs into single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
