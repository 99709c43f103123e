package blame

// ExitCause is the wire representation of one failure, serialized verbatim
// for the worker API.
type ExitCause struct {
	Cause   string `json:"cause"`
	Message string `json:"message"`
}

// ExitCauses maps an ordered failure list to its ordered wire representation.
// Order and duplicates are preserved.
func ExitCauses(blames []Blame) []ExitCause {
	causes := make([]ExitCause, 0, len(blames))
	for _, b := range blames {
		causes = append(causes, b.ExitCause())
	}
	return causes
}
