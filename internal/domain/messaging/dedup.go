package messaging

import "github.com/primefit-labs/training-scheduler/internal/models"

// A message can reach a consumer twice: once from the history fetch and
// once from the live stream racing it. Merging is id-keyed so the combined
// view holds exactly one entry per message.

// AppendIfNew appends msg unless a message with the same id is already
// present.
func AppendIfNew(list []models.Message, msg models.Message) []models.Message {
	for i := range list {
		if list[i].ID == msg.ID {
			return list
		}
	}
	return append(list, msg)
}

// Merge combines a fetched history with messages delivered live, preserving
// the order of the base list and appending unseen live messages after it.
func Merge(base, live []models.Message) []models.Message {
	out := make([]models.Message, 0, len(base)+len(live))
	seen := make(map[uint]bool, len(base)+len(live))

	for _, m := range base {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}
	for _, m := range live {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
	}

	return out
}
