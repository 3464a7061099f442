package events

// Status values recognized on the wire.
const (
	statusStreaming = "streaming"
	statusInterrupt = "interrupt"
	statusComplete  = "complete"
	statusError     = "error"
)

// defaultErrorMessage is used when an error event carries no message.
const defaultErrorMessage = "Unknown error"

// Classify maps a raw engine event to a typed Event. The second return is
// false when the event has an unrecognized shape; such events are dropped
// without error so that newer engine versions can emit kinds weir does not
// know about yet. Classify never mutates raw and never panics.
func Classify(raw Raw) (Event, bool) {
	status, _ := raw["status"].(string)

	switch status {
	case statusStreaming:
		return classifyStreaming(raw)
	case statusInterrupt:
		return classifyInterrupt(raw), true
	case statusComplete:
		return Completed{}, true
	case statusError:
		msg, ok := raw["error"].(string)
		if !ok || msg == "" {
			msg = defaultErrorMessage
		}
		return Failed{Message: msg}, true
	default:
		return nil, false
	}
}

// classifyStreaming dispatches on which of the three known payload keys is
// present. A streaming event carrying none of them is dropped.
func classifyStreaming(raw Raw) (Event, bool) {
	node, _ := raw["node"].(string)

	if text, ok := raw["chunk"].(string); ok {
		return TextDelta{Node: node, Text: text}, true
	}

	if calls, ok := raw["tool_calls"].([]any); ok {
		inv := ToolInvocation{Node: node, Calls: make([]ToolCall, 0, len(calls))}
		for _, c := range calls {
			m, ok := c.(map[string]any)
			if !ok {
				continue
			}
			call := ToolCall{Args: map[string]any{}}
			call.ID, _ = m["id"].(string)
			call.Name, _ = m["name"].(string)
			if args, ok := m["args"].(map[string]any); ok {
				call.Args = args
			}
			inv.Calls = append(inv.Calls, call)
		}
		return inv, true
	}

	if items, ok := raw["todo_list"].([]any); ok {
		upd := TaskListUpdate{Node: node, Items: make([]TaskItem, 0, len(items))}
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			item := TaskItem{}
			item.Status, _ = m["status"].(string)
			item.Content, _ = m["content"].(string)
			upd.Items = append(upd.Items, item)
		}
		return upd, true
	}

	return nil, false
}

// classifyInterrupt pulls the nested pause payload through. Missing arrays
// default to empty slices, never nil.
func classifyInterrupt(raw Raw) Pause {
	pause := Pause{
		Requests:            []ActionRequest{},
		AllowedDecisionSets: [][]string{},
	}

	data, ok := raw["interrupt"].(map[string]any)
	if !ok {
		return pause
	}

	if requests, ok := data["action_requests"].([]any); ok {
		for _, r := range requests {
			m, ok := r.(map[string]any)
			if !ok {
				continue
			}
			req := ActionRequest{Args: map[string]any{}}
			req.Tool, _ = m["tool"].(string)
			req.CallID, _ = m["tool_call_id"].(string)
			req.Description, _ = m["description"].(string)
			if args, ok := m["args"].(map[string]any); ok {
				req.Args = args
			}
			pause.Requests = append(pause.Requests, req)
		}
	}

	if configs, ok := data["review_configs"].([]any); ok {
		for _, c := range configs {
			m, ok := c.(map[string]any)
			if !ok {
				continue
			}
			set := []string{}
			if allowed, ok := m["allowed_decisions"].([]any); ok {
				for _, a := range allowed {
					if s, ok := a.(string); ok {
						set = append(set, s)
					}
				}
			}
			pause.AllowedDecisionSets = append(pause.AllowedDecisionSets, set)
		}
	}

	return pause
}
