package daytime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerDay  = 24 * 60
	MinutesPerWeek = 7 * MinutesPerDay

	// ConflictWindow is the largest circular gap, in minutes, at which two
	// runway events still clash.
	ConflictWindow = 60
)

var ErrInvalidFormat = errors.New("invalid departure time: use the format <day_of_week> <hour:minute>, with 24h time")

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (d Weekday) Next() Weekday {
	return (d + 1) % 7
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return "Weekday(" + strconv.Itoa(int(d)) + ")"
	}
	return weekdayNames[d]
}

// Short returns the three letter abbreviation, e.g. "Mon".
func (d Weekday) Short() string {
	return d.String()[:3]
}

func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if strings.EqualFold(s, name) {
			return Weekday(i), nil
		}
	}
	return 0, ErrInvalidFormat
}

// DayTime is a point in the repeating week, with minute resolution.
type DayTime struct {
	Day    Weekday
	Hour   int
	Minute int
}

func New(day Weekday, hour, minute int) (DayTime, error) {
	if !day.Valid() || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return DayTime{}, ErrInvalidFormat
	}
	return DayTime{Day: day, Hour: hour, Minute: minute}, nil
}

// FromWeekMinute converts a minute offset from Monday 00:00 back into a
// DayTime. Offsets outside the week wrap around it.
func FromWeekMinute(m int) DayTime {
	m %= MinutesPerWeek
	if m < 0 {
		m += MinutesPerWeek
	}
	return DayTime{
		Day:    Weekday(m / MinutesPerDay),
		Hour:   (m % MinutesPerDay) / 60,
		Minute: m % 60,
	}
}

// Parse reads "<Weekday> <H:mm>" or "<Weekday> <HH:mm>". The weekday is
// matched case-insensitively and the time is 24-hour.
func Parse(s string) (DayTime, error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return DayTime{}, ErrInvalidFormat
	}

	day, err := ParseWeekday(parts[0])
	if err != nil {
		return DayTime{}, err
	}

	hour, minute, err := parseClock(parts[1])
	if err != nil {
		return DayTime{}, err
	}

	return New(day, hour, minute)
}

func parseClock(s string) (int, int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, 0, ErrInvalidFormat
	}

	hour, err := atoiDigits(hh)
	if err != nil {
		return 0, 0, err
	}
	minute, err := atoiDigits(mm)
	if err != nil {
		return 0, 0, err
	}
	return hour, minute, nil
}

// atoiDigits rejects signs and spaces that strconv.Atoi would accept.
func atoiDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidFormat
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidFormat
	}
	return n, nil
}

func MustParse(s string) DayTime {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("daytime: MustParse(%q): %v", s, err))
	}
	return d
}

func (d DayTime) WeekMinute() int {
	return int(d.Day)*MinutesPerDay + d.Hour*60 + d.Minute
}

func (d DayTime) AddMinutes(minutes int) DayTime {
	return FromWeekMinute(d.WeekMinute() + minutes)
}

// Compare orders two DayTimes linearly by week minute. It does not wrap:
// Sunday 23:30 sorts after Monday 00:10.
func Compare(a, b DayTime) int {
	am, bm := a.WeekMinute(), b.WeekMinute()
	switch {
	case am > bm:
		return 1
	case am < bm:
		return -1
	default:
		return 0
	}
}

// CircularDistance is the shorter way round the week between a and b.
func CircularDistance(a, b DayTime) int {
	diff := a.WeekMinute() - b.WeekMinute()
	if diff < 0 {
		diff = -diff
	}
	return min(diff, MinutesPerWeek-diff)
}

// IsConflicted reports whether a and b fall within ConflictWindow of each
// other, treating the week as a ring.
func IsConflicted(a, b DayTime) bool {
	return CircularDistance(a, b) <= ConflictWindow
}

// ForwardGap is the number of minutes from "from" forward to "to", wrapping into
// the following week when "to" is earlier in the week.
func ForwardGap(from, to DayTime) int {
	gap := to.WeekMinute() - from.WeekMinute()
	if gap < 0 {
		gap += MinutesPerWeek
	}
	return gap
}

// String renders the short form used in listings, e.g. "Mon 09:05".
func (d DayTime) String() string {
	return fmt.Sprintf("%s %02d:%02d", d.Day.Short(), d.Hour, d.Minute)
}

// FullString renders the form accepted by Parse, e.g. "Monday 09:05".
func (d DayTime) FullString() string {
	return fmt.Sprintf("%s %02d:%02d", d.Day, d.Hour, d.Minute)
}

func (d DayTime) MarshalText() ([]byte, error) {
	return []byte(d.FullString()), nil
}

func (d *DayTime) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
