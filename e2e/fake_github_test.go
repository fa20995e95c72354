//go:build e2e && unix

package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

type fakeRepo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	Owner       fakeOwner `json:"owner"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Fork        bool      `json:"fork"`
	Private     bool      `json:"private"`
	HTMLURL     string    `json:"html_url"`
	CloneURL    string    `json:"clone_url"`
	UpdatedAt   string    `json:"updated_at"`
}

type fakeOwner struct {
	Login string `json:"login"`
}

// fakeGitHub serves the handful of REST endpoints repohub calls
type fakeGitHub struct {
	server *httptest.Server
	repos  map[string][]fakeRepo // owner -> repos

	mu    sync.Mutex
	pages []int
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{repos: map[string][]fakeRepo{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{owner}/repos", f.listRepos)
	mux.HandleFunc("GET /repos/{owner}/{name}", f.getRepo)
	mux.HandleFunc("GET /repos/{owner}/{name}/readme", f.getReadme)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

// URL is the API root to pass as the base URL
func (f *fakeGitHub) URL() string {
	return f.server.URL + "/"
}

func (f *fakeGitHub) addRepos(owner string, n int) {
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("repo%02d", i)
		lang := "Go"
		if i%2 == 0 {
			lang = "Rust"
		}
		f.repos[owner] = append(f.repos[owner], fakeRepo{
			ID:        int64(i),
			Name:      name,
			FullName:  owner + "/" + name,
			Owner:     fakeOwner{Login: owner},
			Language:  lang,
			Stars:     i * 10,
			HTMLURL:   "https://github.com/" + owner + "/" + name,
			CloneURL:  "https://github.com/" + owner + "/" + name + ".git",
			UpdatedAt: "2026-01-02T03:04:05Z",
		})
	}
}

// requestedPages returns the pages listed so far
func (f *fakeGitHub) requestedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

func (f *fakeGitHub) listRepos(w http.ResponseWriter, r *http.Request) {
	repos, ok := f.repos[r.PathValue("owner")]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 30
	}

	f.mu.Lock()
	f.pages = append(f.pages, page)
	f.mu.Unlock()

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(repos) {
		start = len(repos)
	}
	if end > len(repos) {
		end = len(repos)
	}
	if end < len(repos) {
		next := fmt.Sprintf("%s%s?page=%d&per_page=%d", f.server.URL, r.URL.Path, page+1, perPage)
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
	}
	writeJSON(w, http.StatusOK, repos[start:end])
}

func (f *fakeGitHub) find(owner, name string) (fakeRepo, bool) {
	for _, repo := range f.repos[owner] {
		if repo.Name == name {
			return repo, true
		}
	}
	return fakeRepo{}, false
}

func (f *fakeGitHub) getRepo(w http.ResponseWriter, r *http.Request) {
	repo, ok := f.find(r.PathValue("owner"), r.PathValue("name"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

func (f *fakeGitHub) getReadme(w http.ResponseWriter, r *http.Request) {
	repo, ok := f.find(r.PathValue("owner"), r.PathValue("name"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	content := "# " + repo.Name + "\n\nReadme body for " + repo.FullName + "\n"
	writeJSON(w, http.StatusOK, map[string]string{
		"type":     "file",
		"name":     "README.md",
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(content)),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
