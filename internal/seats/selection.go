package seats

// Toggle flips a seat in a selection. Tapping an unselected seat adds it,
// tapping it again removes it. Booked seats never enter the selection.
// The input slice is not mutated and selection order is preserved.
func Toggle(selection []string, seatID string, booked map[string]bool) []string {
	if _, _, err := ParseSeatID(seatID); err != nil {
		return selection
	}
	if booked[seatID] {
		return selection
	}

	for i, selected := range selection {
		if selected == seatID {
			result := make([]string, 0, len(selection)-1)
			result = append(result, selection[:i]...)
			return append(result, selection[i+1:]...)
		}
	}

	result := make([]string, 0, len(selection)+1)
	result = append(result, selection...)
	return append(result, seatID)
}
