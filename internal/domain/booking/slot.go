package booking

// Slots are the nine daily start times, with no 13:00 slot for the midday break.
var Slots = []string{
	"09:00", "10:00", "11:00", "12:00",
	"14:00", "15:00", "16:00", "17:00", "18:00",
}

func IsValidSlot(s string) bool {
	for _, slot := range Slots {
		if slot == s {
			return true
		}
	}
	return false
}

type SlotAvailability struct {
	Time string `json:"time"`
	Free bool   `json:"free"`
}
