package curse

import (
	"errors"
	"testing"
	"time"
)

func attachedProject(provider *stubProvider) *Project {
	c := NewClient(nil, provider)
	p := NewProject(Project{
		ID:     285612,
		Name:   "RandomPatches",
		Slug:   "randompatches",
		URL:    "https://www.curseforge.com/minecraft/mc-mods/randompatches",
		GameID: 432,
	}, nil, nil)
	p.attach(c)
	return p
}

func TestProjectIdentityAndOrdering(t *testing.T) {
	a := NewProject(Project{ID: 285612, Name: "RandomPatches"}, nil, nil)
	sameID := NewProject(Project{ID: 285612, Name: "Renamed"}, nil, nil)
	b := NewProject(Project{ID: 285613, Name: "Autumnity"}, nil, nil)

	if !a.Equal(sameID) {
		t.Error("projects with the same ID should be equal")
	}
	if a.Equal(b) {
		t.Error("projects with different IDs should not be equal")
	}
	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
	if a.Compare(b) <= 0 {
		t.Error("ordering should be by name, not ID")
	}
}

func TestProjectLogoAndAttachments(t *testing.T) {
	logo := Attachment{ID: 80000, Title: "logo"}
	screenshot := Attachment{ID: 80001, Title: "screenshot"}

	t.Run("with logo", func(t *testing.T) {
		p := NewProject(Project{ID: 285612}, []Attachment{screenshot}, &logo)
		if p.Logo().ID != logo.ID {
			t.Errorf("Logo = %v", p.Logo())
		}
		if got := p.Attachments(); len(got) != 1 || got[0].ID != screenshot.ID {
			t.Errorf("Attachments = %v", got)
		}
	})

	t.Run("without logo", func(t *testing.T) {
		p := NewProject(Project{ID: 285612}, nil, nil)
		if !p.Logo().IsPlaceholder() {
			t.Errorf("Logo = %v, want the placeholder", p.Logo())
		}
	})

	t.Run("attachment lookup", func(t *testing.T) {
		p := NewProject(Project{ID: 285612}, []Attachment{screenshot}, &logo)

		got, err := p.Attachment(screenshot.ID)
		if err != nil {
			t.Fatalf("Attachment: %v", err)
		}
		if got == nil || got.ID != screenshot.ID {
			t.Errorf("got %v", got)
		}

		got, err = p.Attachment(logo.ID)
		if err != nil {
			t.Fatalf("Attachment: %v", err)
		}
		if got == nil || got.ID != logo.ID {
			t.Errorf("the real logo should be retrievable by ID, got %v", got)
		}

		got, err = p.Attachment(80002)
		if err != nil {
			t.Fatalf("Attachment: %v", err)
		}
		if got != nil {
			t.Errorf("got %v for an unknown ID", got)
		}

		if _, err := p.Attachment(MinAttachmentID - 1); !errors.Is(err, ErrPrecondition) {
			t.Errorf("got err %v, want ErrPrecondition", err)
		}
	})
}

func TestProjectFileURL(t *testing.T) {
	p := NewProject(Project{ID: 285612, URL: "https://www.curseforge.com/minecraft/mc-mods/randompatches"}, nil, nil)

	got, err := p.FileURL(70001)
	if err != nil {
		t.Fatalf("FileURL: %v", err)
	}
	want := "https://www.curseforge.com/minecraft/mc-mods/randompatches/files/70001"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if _, err := p.FileURL(MinFileID - 1); !errors.Is(err, ErrPrecondition) {
		t.Errorf("got err %v, want ErrPrecondition", err)
	}
}

func TestProjectDescriptionCaching(t *testing.T) {
	fetches := 0
	p := attachedProject(&stubProvider{
		projectDescription: func(int) (string, bool, error) {
			fetches++
			return "<p>Fixes bugs &amp; crashes.</p>", true, nil
		},
	})

	for range 3 {
		got, err := p.Description()
		if err != nil {
			t.Fatalf("Description: %v", err)
		}
		if got != "<p>Fixes bugs &amp; crashes.</p>" {
			t.Errorf("got %q", got)
		}
	}
	if fetches != 1 {
		t.Errorf("fetched %d times, want 1", fetches)
	}

	t.Run("plain text", func(t *testing.T) {
		got, err := p.DescriptionPlainText(80)
		if err != nil {
			t.Fatalf("DescriptionPlainText: %v", err)
		}
		if got != "Fixes bugs & crashes." {
			t.Errorf("got %q", got)
		}
		if fetches != 1 {
			t.Errorf("plain text rendering refetched, %d fetches", fetches)
		}
	})

	t.Run("refresh", func(t *testing.T) {
		if _, err := p.RefreshDescription(); err != nil {
			t.Fatalf("RefreshDescription: %v", err)
		}
		if fetches != 2 {
			t.Errorf("fetched %d times after refresh, want 2", fetches)
		}
	})
}

func TestProjectDescriptionUnresolved(t *testing.T) {
	p := attachedProject(&stubProvider{})

	_, err := p.Description()
	if !errors.Is(err, ErrUnresolved) {
		t.Errorf("got err %v, want ErrUnresolved", err)
	}
}

func TestProjectGameCaching(t *testing.T) {
	fetches := 0
	p := attachedProject(&stubProvider{
		game: func(id int) (*Game, error) {
			fetches++
			return &Game{ID: id, Name: "Minecraft"}, nil
		},
	})

	game, err := p.Game()
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if game.ID != p.GameID {
		t.Errorf("Game.ID = %d, want %d", game.ID, p.GameID)
	}
	if _, err := p.Game(); err != nil {
		t.Fatalf("Game: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetched %d times, want 1", fetches)
	}
}

func TestProjectFilesCaching(t *testing.T) {
	healthy := true
	fetches := 0
	p := attachedProject(&stubProvider{
		files: func(int) ([]*File, error) {
			fetches++
			if !healthy {
				return nil, ErrUnavailable
			}
			return []*File{
				fileAt(70001, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
				fileAt(70002, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),
			}, nil
		},
	})

	files, err := p.Files()
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if files.Len() != 2 || files.First().ID != 70002 {
		t.Errorf("got %v, want both files newest first", ids(files))
	}
	if _, err := p.Files(); err != nil {
		t.Fatalf("Files: %v", err)
	}
	if fetches != 1 {
		t.Errorf("fetched %d times, want 1", fetches)
	}

	t.Run("failed refresh keeps last value", func(t *testing.T) {
		healthy = false
		got, err := p.RefreshFiles()
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("got err %v, want ErrUnavailable", err)
		}
		if got == nil || got.Len() != 2 {
			t.Errorf("got %v after failed refresh, want the cached files", got)
		}
	})
}
