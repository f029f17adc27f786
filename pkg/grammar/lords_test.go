package grammar

import "testing"

func TestLordsParse(t *testing.T) {
	parser := NewLordsParser()
	cases := []struct {
		name      string
		input     string
		wantTitle string
		wantLast  string
		wantPlace string
	}{
		{"bishop_courtesy_form", "The Lord Bishop of Southwark", "bishop", "", "Southwark"},
		{"bishop_base_form", "Bishop of Southwark", "bishop", "", "Southwark"},
		{"archbishop_courtesy_form", "The Lord Archbishop of Canterbury", "archbishop", "", "Canterbury"},
		{"lord_name_and_place", "Lord Smith of Finsbury", "lord", "Smith", "Finsbury"},
		{"lord_name_only", "Lord Hattersley", "lord", "Hattersley", ""},
		{"baroness", "Baroness Williams of Crosby", "baroness", "Williams", "Crosby"},
		{"earl_place_only", "The Earl of Onslow", "earl", "", "Onslow"},
		{"viscount", "Viscount Younger of Leckie", "viscount", "Younger", "Leckie"},
		{"duke", "The Duke of Norfolk", "duke", "", "Norfolk"},
		{"compound_place", "Lord Bishop of Southwell and Nottingham", "bishop", "", "Southwell and Nottingham"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields, err := parser.Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.input, err)
			}
			if fields.Title != tc.wantTitle {
				t.Errorf("Title = %q, want %q", fields.Title, tc.wantTitle)
			}
			if fields.LastName != tc.wantLast {
				t.Errorf("LastName = %q, want %q", fields.LastName, tc.wantLast)
			}
			if fields.Place != tc.wantPlace {
				t.Errorf("Place = %q, want %q", fields.Place, tc.wantPlace)
			}
		})
	}
}

func TestLordsParseDecorations(t *testing.T) {
	parser := NewLordsParser()

	t.Run("trailing_colon", func(t *testing.T) {
		fields, err := parser.Parse("Lord Hattersley:")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !fields.TrailingColon {
			t.Error("Expected trailing colon flag")
		}
		if fields.LastName != "Hattersley" {
			t.Errorf("LastName = %q", fields.LastName)
		}
	})

	t.Run("maiden_speech", func(t *testing.T) {
		fields, err := parser.Parse("Baroness Andrews (Maiden Speech)")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !fields.MaidenSpeech {
			t.Error("Expected maiden speech flag")
		}
	})
}

func TestLordsParseFailure(t *testing.T) {
	parser := NewLordsParser()
	for _, bad := range []string{"John Smith", "Mr Speaker", "", "of Nowhere"} {
		if _, err := parser.Parse(bad); err == nil {
			t.Errorf("Expected parse error for %q", bad)
		} else if _, ok := err.(*ParseError); !ok {
			t.Errorf("Expected *ParseError for %q, got %T", bad, err)
		}
	}
}
