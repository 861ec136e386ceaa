package signup

// Columns is the positional contract for one signup sheet row. The
// sheet layout is owned by the convention organizers; we trust the
// configured positions and filter rows that violate them rather than
// trying to repair anything.
type Columns struct {
	ID        int `koanf:"id"`
	Name      int `koanf:"name"`
	Status    int `koanf:"status"`
	StartDay  int `koanf:"start_day"`
	StartTime int `koanf:"start_time"`
	EndDay    int `koanf:"end_day"`
	EndTime   int `koanf:"end_time"`
	Duration  int `koanf:"duration"`
	Location  int `koanf:"location"`

	// PlayerFrom..PlayerTo is the half-open range of player slot
	// columns scanned left to right.
	PlayerFrom int `koanf:"player_from"`
	PlayerTo   int `koanf:"player_to"`

	// MinWidth is the smallest cell count a row may have and still be
	// considered a game row.
	MinWidth int `koanf:"min_width"`
}

// DefaultColumns matches the published sheet layout.
func DefaultColumns() Columns {
	return Columns{
		ID:         0,
		Name:       1,
		Status:     2,
		StartDay:   11,
		StartTime:  12,
		EndDay:     13,
		EndTime:    14,
		Duration:   19,
		Location:   20,
		PlayerFrom: 23,
		PlayerTo:   32,
		MinWidth:   23,
	}
}
