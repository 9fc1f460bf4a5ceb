package stream

import (
	"regexp"

	"github.com/tidwall/gjson"
)

// nextWorkerPattern pulls the routing target out of function-call arguments
// that are still streaming in and so are not valid JSON yet.
var nextWorkerPattern = regexp.MustCompile(`"next_worker"\s*:\s*"([^"]+)"`)

// ExtractAgentName returns the next_worker named in serialized function-call
// arguments, or "" if there is none. A top-level key in complete JSON wins;
// otherwise the first next_worker anywhere in the text is used, which also
// covers nested objects and fragments that are still streaming in.
func ExtractAgentName(arguments string) string {
	if arguments == "" {
		return ""
	}
	if gjson.Valid(arguments) {
		if v := gjson.Get(arguments, "next_worker"); v.Type == gjson.String {
			return v.String()
		}
	}
	if m := nextWorkerPattern.FindStringSubmatch(arguments); m != nil {
		return m[1]
	}
	return ""
}

// agentNameFromItem looks for next_worker in the legacy function_call
// arguments first, then in structured tool calls.
func agentNameFromItem(item gjson.Result) string {
	if args := item.Get("additional_kwargs.function_call.arguments"); args.Exists() {
		if name := ExtractAgentName(args.String()); name != "" {
			return name
		}
	}

	var name string
	item.Get("tool_calls").ForEach(func(_, call gjson.Result) bool {
		if v := call.Get("args.next_worker"); v.Type == gjson.String && v.String() != "" {
			name = v.String()
			return false
		}
		return true
	})
	return name
}
