package curse

import (
	"errors"
	"testing"
	"time"
)

// stubProvider answers from function fields and reports "not found" for
// everything left nil.
type stubProvider struct {
	name string

	project            func(id int) (*Project, error)
	projectByPath      func(path string) (*Project, error)
	searchProjects     func(query SearchQuery) ([]*Project, error)
	projectDescription func(id int) (string, bool, error)
	files              func(projectID int) ([]*File, error)
	file               func(projectID, fileID int) (*File, error)
	fileChangelog      func(projectID, fileID int) (string, bool, error)
	fileDownloadURL    func(projectID, fileID int) (string, bool, error)
	games              func() ([]*Game, error)
	game               func(id int) (*Game, error)
	gameVersions       func(gameID int) ([]*GameVersion, error)
	gameVersion        func(gameID int, versionString string) (*GameVersion, error)
	categories         func() ([]*Category, error)
	categoriesIn       func(sectionID int) ([]*Category, error)
	category           func(id int) (*Category, error)
}

func (s *stubProvider) Project(id int) (*Project, error) {
	if s.project == nil {
		return nil, nil
	}
	return s.project(id)
}

func (s *stubProvider) ProjectByPath(path string) (*Project, error) {
	if s.projectByPath == nil {
		return nil, nil
	}
	return s.projectByPath(path)
}

func (s *stubProvider) SearchProjects(query SearchQuery) ([]*Project, error) {
	if s.searchProjects == nil {
		return nil, nil
	}
	return s.searchProjects(query)
}

func (s *stubProvider) ProjectDescription(id int) (string, bool, error) {
	if s.projectDescription == nil {
		return "", false, nil
	}
	return s.projectDescription(id)
}

func (s *stubProvider) Files(projectID int) ([]*File, error) {
	if s.files == nil {
		return nil, nil
	}
	return s.files(projectID)
}

func (s *stubProvider) File(projectID, fileID int) (*File, error) {
	if s.file == nil {
		return nil, nil
	}
	return s.file(projectID, fileID)
}

func (s *stubProvider) FileChangelog(projectID, fileID int) (string, bool, error) {
	if s.fileChangelog == nil {
		return "", false, nil
	}
	return s.fileChangelog(projectID, fileID)
}

func (s *stubProvider) FileDownloadURL(projectID, fileID int) (string, bool, error) {
	if s.fileDownloadURL == nil {
		return "", false, nil
	}
	return s.fileDownloadURL(projectID, fileID)
}

func (s *stubProvider) Games() ([]*Game, error) {
	if s.games == nil {
		return nil, nil
	}
	return s.games()
}

func (s *stubProvider) Game(id int) (*Game, error) {
	if s.game == nil {
		return nil, nil
	}
	return s.game(id)
}

func (s *stubProvider) GameVersions(gameID int) ([]*GameVersion, error) {
	if s.gameVersions == nil {
		return nil, nil
	}
	return s.gameVersions(gameID)
}

func (s *stubProvider) GameVersion(gameID int, versionString string) (*GameVersion, error) {
	if s.gameVersion == nil {
		return nil, nil
	}
	return s.gameVersion(gameID, versionString)
}

func (s *stubProvider) Categories() ([]*Category, error) {
	if s.categories == nil {
		return nil, nil
	}
	return s.categories()
}

func (s *stubProvider) CategoriesIn(sectionID int) ([]*Category, error) {
	if s.categoriesIn == nil {
		return nil, nil
	}
	return s.categoriesIn(sectionID)
}

func (s *stubProvider) Category(id int) (*Category, error) {
	if s.category == nil {
		return nil, nil
	}
	return s.category(id)
}

func projectNamed(id int, name string) *Project {
	return NewProject(Project{ID: id, Name: name}, nil, nil)
}

func TestClientRegistry(t *testing.T) {
	first := &stubProvider{name: "first"}
	second := &stubProvider{name: "second"}

	t.Run("add preserves order", func(t *testing.T) {
		c := NewClient(nil)
		if !c.AddProvider(first, false) {
			t.Error("AddProvider returned false for a new provider")
		}
		if !c.AddProvider(second, false) {
			t.Error("AddProvider returned false for a new provider")
		}
		providers := c.Providers()
		if len(providers) != 2 || providers[0] != first || providers[1] != second {
			t.Errorf("providers out of order: %v", providers)
		}
	})

	t.Run("first priority prepends", func(t *testing.T) {
		c := NewClient(nil, first)
		c.AddProvider(second, true)
		providers := c.Providers()
		if providers[0] != second {
			t.Errorf("expected second to be consulted first, got %v", providers)
		}
	})

	t.Run("duplicates rejected", func(t *testing.T) {
		c := NewClient(nil, first)
		if c.AddProvider(first, false) {
			t.Error("AddProvider accepted a duplicate")
		}
		if c.AddProvider(first, true) {
			t.Error("AddProvider accepted a duplicate at first priority")
		}
		if len(c.Providers()) != 1 {
			t.Errorf("registry grew on duplicate add: %v", c.Providers())
		}
	})

	t.Run("nil rejected", func(t *testing.T) {
		c := NewClient(nil)
		if c.AddProvider(nil, false) {
			t.Error("AddProvider accepted nil")
		}
	})

	t.Run("remove", func(t *testing.T) {
		c := NewClient(nil, first, second)
		if !c.RemoveProvider(first) {
			t.Error("RemoveProvider returned false for a registered provider")
		}
		if c.RemoveProvider(first) {
			t.Error("RemoveProvider returned true for an unregistered provider")
		}
		if providers := c.Providers(); len(providers) != 1 || providers[0] != second {
			t.Errorf("unexpected registry after remove: %v", providers)
		}
	})

	t.Run("snapshot is isolated", func(t *testing.T) {
		c := NewClient(nil, first, second)
		snapshot := c.Providers()
		snapshot[0] = nil
		if providers := c.Providers(); providers[0] != first {
			t.Error("mutating the snapshot affected the registry")
		}
	})
}

func TestClientFirstSuccessWins(t *testing.T) {
	zeta := &stubProvider{
		name: "zeta",
		project: func(id int) (*Project, error) {
			return projectNamed(id, "Zeta"), nil
		},
	}
	alpha := &stubProvider{
		name: "alpha",
		project: func(id int) (*Project, error) {
			return projectNamed(id, "Alpha"), nil
		},
	}
	missing := &stubProvider{name: "missing"}

	t.Run("earlier provider wins", func(t *testing.T) {
		c := NewClient(nil, zeta, alpha)
		p, err := c.Project(285612)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p == nil || p.Name != "Zeta" {
			t.Errorf("got %v, want the first provider's answer", p)
		}
	})

	t.Run("not found falls through", func(t *testing.T) {
		c := NewClient(nil, missing, alpha)
		p, err := c.Project(285612)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p == nil || p.Name != "Alpha" {
			t.Errorf("got %v, want the second provider's answer", p)
		}
	})

	t.Run("all not found", func(t *testing.T) {
		c := NewClient(nil, missing, missing)
		p, err := c.Project(285612)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p != nil {
			t.Errorf("got %v, want nil", p)
		}
	})

	t.Run("empty registry", func(t *testing.T) {
		c := NewClient(nil)
		p, err := c.Project(285612)
		if err != nil {
			t.Fatalf("Project: %v", err)
		}
		if p != nil {
			t.Errorf("got %v, want nil", p)
		}
	})
}

func TestClientErrorAbortsResolution(t *testing.T) {
	backendErr := errors.New("backend exploded")
	failing := &stubProvider{
		name: "failing",
		project: func(int) (*Project, error) {
			return nil, backendErr
		},
	}
	neverReached := &stubProvider{
		name: "never",
		project: func(int) (*Project, error) {
			t.Error("fallback provider was consulted after a hard error")
			return nil, nil
		},
	}

	c := NewClient(nil, failing, neverReached)
	p, err := c.Project(285612)
	if !errors.Is(err, backendErr) {
		t.Errorf("got err %v, want the provider's error", err)
	}
	if p != nil {
		t.Errorf("got %v, want nil alongside the error", p)
	}
}

func TestClientPreconditionsBeforeProviders(t *testing.T) {
	mustNotBeCalled := &stubProvider{
		name: "untouchable",
		project: func(int) (*Project, error) {
			t.Error("provider consulted despite an invalid argument")
			return nil, nil
		},
	}
	c := NewClient(nil, mustNotBeCalled)

	tests := []struct {
		name string
		call func() error
	}{
		{"project id below minimum", func() error {
			_, err := c.Project(MinProjectID - 1)
			return err
		}},
		{"empty path", func() error {
			_, err := c.ProjectByPath("")
			return err
		}},
		{"file id below minimum", func() error {
			_, err := c.File(MinProjectID, MinFileID-1)
			return err
		}},
		{"game id below minimum", func() error {
			_, err := c.Game(0)
			return err
		}},
		{"category id below minimum", func() error {
			_, err := c.Category(0)
			return err
		}},
		{"section id below minimum", func() error {
			_, err := c.CategoriesIn(0)
			return err
		}},
		{"non-positive line length", func() error {
			_, _, err := c.ProjectDescriptionPlainText(MinProjectID, 0)
			return err
		}},
		{"negative search page", func() error {
			_, err := c.SearchProjects(SearchQuery{PageIndex: -1})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrPrecondition) {
				t.Errorf("got err %v, want ErrPrecondition", err)
			}
		})
	}
}

func TestClientEmptySliceIsPresent(t *testing.T) {
	emptyButPresent := &stubProvider{
		name: "empty",
		files: func(int) ([]*File, error) {
			return []*File{}, nil
		},
	}
	fallback := &stubProvider{
		name: "fallback",
		files: func(projectID int) ([]*File, error) {
			t.Error("fallback consulted despite a present empty answer")
			return nil, nil
		},
	}

	c := NewClient(nil, emptyButPresent, fallback)
	files, err := c.Files(MinProjectID)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if files == nil {
		t.Fatal("an empty answer should resolve, not fall through")
	}
	if files.Len() != 0 {
		t.Errorf("got %d files, want 0", files.Len())
	}
}

func TestClientFilesOrderedNewestFirst(t *testing.T) {
	older := &File{ID: 70001, ProjectID: MinProjectID, UploadTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &File{ID: 70002, ProjectID: MinProjectID, UploadTime: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)}
	provider := &stubProvider{
		files: func(int) ([]*File, error) {
			return []*File{older, newer}, nil
		},
	}

	c := NewClient(nil, provider)
	files, err := c.Files(MinProjectID)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if first := files.First(); first == nil || first.ID != newer.ID {
		t.Errorf("first file = %v, want the newest", first)
	}
}

func TestClientScalarResolution(t *testing.T) {
	described := &stubProvider{
		projectDescription: func(int) (string, bool, error) {
			return "<p>A mod.</p>", true, nil
		},
		fileDownloadURL: func(int, int) (string, bool, error) {
			return "https://example.com/file.jar", true, nil
		},
	}
	c := NewClient(nil, &stubProvider{}, described)

	t.Run("description", func(t *testing.T) {
		got, found, err := c.ProjectDescription(MinProjectID)
		if err != nil || !found {
			t.Fatalf("got (found=%v, err=%v), want a hit", found, err)
		}
		if got != "<p>A mod.</p>" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("plain text description", func(t *testing.T) {
		got, found, err := c.ProjectDescriptionPlainText(MinProjectID, 80)
		if err != nil || !found {
			t.Fatalf("got (found=%v, err=%v), want a hit", found, err)
		}
		if got != "A mod." {
			t.Errorf("got %q, want %q", got, "A mod.")
		}
	})

	t.Run("download URL", func(t *testing.T) {
		got, found, err := c.FileDownloadURL(MinProjectID, MinFileID)
		if err != nil || !found {
			t.Fatalf("got (found=%v, err=%v), want a hit", found, err)
		}
		if got != "https://example.com/file.jar" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("all providers miss", func(t *testing.T) {
		c := NewClient(nil, &stubProvider{})
		_, found, err := c.ProjectDescription(MinProjectID)
		if err != nil {
			t.Fatalf("ProjectDescription: %v", err)
		}
		if found {
			t.Error("found = true with no provider knowing the project")
		}
	})
}
