package runtime

import "strings"

type alias struct {
	from, to string
}

var payloadAliases = []alias{
	{"{{{ payload }}}", "{{{payload_json}}}"},
	{"{{{payload}}}", "{{{payload_json}}}"},
	{"{{ payload }}", "{{payload_json}}"},
	{"{{payload}}", "{{payload_json}}"},
}

var stateAliases = []alias{
	{"{{{ state }}}", "{{{state_json}}}"},
	{"{{{state}}}", "{{{state_json}}}"},
	{"{{ state }}", "{{state_json}}"},
	{"{{state}}", "{{state_json}}"},
}

// Normalize rewrites bare payload and state placeholders to their JSON string
// aliases. Only the exact spellings in the alias tables are touched, so paths
// like {{payload.text}} and block helpers like {{#each payload}} pass through.
// State placeholders are rewritten only when withState is set.
func Normalize(template string, withState bool) string {
	out := applyAliases(template, payloadAliases)
	if withState {
		out = applyAliases(out, stateAliases)
	}
	return out
}

func applyAliases(s string, table []alias) string {
	for _, a := range table {
		s = strings.ReplaceAll(s, a.from, a.to)
	}
	return s
}
