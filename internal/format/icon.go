package format

// ManeuverIcon maps a routing engine maneuver type to a material icon name.
// Unknown types map to "".
func ManeuverIcon(maneuverType int) string {
	switch maneuverType {
	case 1, 2, 3, 7, 8, 17, 22:
		return "straight"
	case 4, 5, 6:
		return "place"
	case 9, 18, 20, 23:
		return "turn_slight_right"
	case 10:
		return "turn_right"
	case 11:
		return "turn_sharp_right"
	case 12:
		return "u_turn_right"
	case 13:
		return "u_turn_left"
	case 14:
		return "turn_sharp_left"
	case 15:
		return "turn_left"
	case 16, 19, 21, 24:
		return "turn_slight_left"
	case 25:
		return "merge"
	case 26, 28:
		return "login"
	case 27, 29:
		return "logout"
	default:
		return ""
	}
}
