package prompt

import (
	"fmt"
	"strings"
)

const (
	maxCaptionWords = 20
	hashtagCount    = 5
)

// Build assembles the instruction sent to the model alongside the image.
// Guidance, when non-empty, is quoted verbatim so user intent survives intact.
func Build(guidance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a short caption (max %d words) describing this image. ", maxCaptionWords)
	b.WriteString("The caption will be used for social media posting, make it relevant to that. ")
	if guidance != "" {
		// Plain quotes, not %q: the guidance must reach the model verbatim,
		// with no escaping of quotes or newlines inside it.
		b.WriteString(`Follow this guidance from the user: "` + guidance + `". `)
	}
	fmt.Fprintf(&b, "Also provide %d relevant hashtags. ", hashtagCount)
	b.WriteString(`Return ONLY a minified JSON object of the form {"caption": "", "hashtags": []} with no prose and no markdown.`)
	return b.String()
}
