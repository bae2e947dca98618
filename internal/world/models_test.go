package world

import "testing"

func TestGameDateNext(t *testing.T) {
	tests := []struct {
		name string
		date GameDate
		want GameDate
	}{
		{name: "plain day", date: GameDate{Day: 14, Month: 3, Year: 1950}, want: GameDate{Day: 15, Month: 3, Year: 1950}},
		{name: "month rollover", date: GameDate{Day: 30, Month: 3, Year: 1950}, want: GameDate{Day: 1, Month: 4, Year: 1950}},
		{name: "year rollover", date: GameDate{Day: 30, Month: 12, Year: 1950}, want: GameDate{Day: 1, Month: 1, Year: 1951}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.Next(); got != tt.want {
				t.Errorf("%v.Next() = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestGameDateString(t *testing.T) {
	d := GameDate{Day: 5, Month: 3, Year: 1950}
	if got := d.String(); got != "05/03/1950" {
		t.Errorf("String() = %q, want 05/03/1950", got)
	}
}
