// internal/workers/communication/notify-match/message.go
package notifymatch

import (
	"fmt"
	"html"
)

func subject(in *Input) string {
	return fmt.Sprintf("New match for %s: %s (%s)", in.InputName, in.MatchedName, in.MatchedProfileID)
}

func textBody(in *Input) string {
	return fmt.Sprintf("%s was matched with %s, profile %s.\nCompatibility score: %d%%\n",
		in.InputName, in.MatchedName, in.MatchedProfileID, in.CompatibilityScore)
}

func htmlBody(in *Input) string {
	return fmt.Sprintf(`<p><strong>%s</strong> was matched with <strong>%s</strong>, profile <code>%s</code>.</p><p>Compatibility score: %d%%</p>`,
		html.EscapeString(in.InputName), html.EscapeString(in.MatchedName),
		html.EscapeString(in.MatchedProfileID), in.CompatibilityScore)
}

func smsBody(in *Input) string {
	return fmt.Sprintf("Match: %s - %s (%s), score %d%%", in.InputName, in.MatchedName, in.MatchedProfileID, in.CompatibilityScore)
}
