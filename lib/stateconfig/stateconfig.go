// Package stateconfig holds the per-state lottery site configuration:
// which domains belong to which state, where the games lists live, and
// the global request settings used when harvesting them.
package stateconfig

import (
	_ "embed"
	"net/url"
	"sort"
	"strings"

	"scratchroi-backend/lib/configutil"
)

//go:embed states.json5
var defaultConfig []byte

type URLs struct {
	GamesList         string `json:"games_list"`
	GameDetailPattern string `json:"game_detail_pattern"`
	APIEndpoint       string `json:"api_endpoint"`
}

type State struct {
	// Key is the map key the state was registered under, filled in on load.
	Key     string   `json:"-"`
	Name    string   `json:"name"`
	BaseURL string   `json:"base_url"`
	Domains []string `json:"domains"`
	URLs    URLs     `json:"urls"`
	Active  bool     `json:"active"`
}

type Settings struct {
	DefaultTimeout        int    `json:"default_timeout"`
	MaxConcurrentRequests int    `json:"max_concurrent_requests"`
	RetryAttempts         int    `json:"retry_attempts"`
	// DelayBetweenRequests is in microseconds.
	DelayBetweenRequests int    `json:"delay_between_requests"`
	UserAgent            string `json:"user_agent"`
}

type Config struct {
	States   map[string]State `json:"states"`
	Settings Settings         `json:"settings"`
}

type GamesListEntry struct {
	URL      string `json:"url"`
	Name     string `json:"name"`
	StateKey string `json:"state_key"`
}

type DomainEntry struct {
	Name    string   `json:"name"`
	Domains []string `json:"domains"`
	BaseURL string   `json:"base_url"`
}

type Stats struct {
	TotalStates    int      `json:"total_states"`
	ActiveStates   int      `json:"active_states"`
	InactiveStates int      `json:"inactive_states"`
	States         []string `json:"states"`
}

// Service answers questions about the configured lottery states.
type Service struct {
	config Config
}

// Load reads the embedded defaults merged with any states.json5 /
// states.local.json5 found up the directory tree.
func Load() (*Service, error) {
	config, err := configutil.ReadWithDefault[Config](defaultConfig, "states.json5")
	if err != nil {
		return nil, err
	}
	for key, state := range config.States {
		state.Key = key
		config.States[key] = state
	}
	return &Service{config: config}, nil
}

func (s *Service) Settings() Settings {
	return s.config.Settings
}

// ActiveStates returns the active states sorted by key.
func (s *Service) ActiveStates() []State {
	var states []State
	for _, state := range s.config.States {
		if state.Active {
			states = append(states, state)
		}
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Key < states[j].Key
	})
	return states
}

func (s *Service) StateByKey(key string) (State, bool) {
	state, ok := s.config.States[key]
	return state, ok
}

func (s *Service) IsStateActive(key string) bool {
	state, ok := s.config.States[key]
	return ok && state.Active
}

// StateByDomain finds the active state owning the given host.
func (s *Service) StateByDomain(domain string) (State, bool) {
	for _, state := range s.ActiveStates() {
		for _, d := range state.Domains {
			if strings.EqualFold(d, domain) {
				return state, true
			}
		}
	}
	return State{}, false
}

// ValidateURL parses the URL and resolves its host to a configured
// state. It fails on URLs without a host.
func (s *Service) ValidateURL(rawURL string) (State, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return State{}, false
	}
	return s.StateByDomain(parsed.Hostname())
}

func (s *Service) StateKeyFromURL(rawURL string) string {
	state, ok := s.ValidateURL(rawURL)
	if !ok {
		return ""
	}
	return state.Key
}

// GameDetailURL expands a state's game detail pattern with the game id.
func (s *Service) GameDetailURL(stateKey, gameID string) (string, bool) {
	state, ok := s.config.States[stateKey]
	if !ok || state.URLs.GameDetailPattern == "" {
		return "", false
	}
	return strings.ReplaceAll(state.URLs.GameDetailPattern, "{game_id}", gameID), true
}

func (s *Service) GamesListURL(stateKey string) (string, bool) {
	state, ok := s.config.States[stateKey]
	if !ok || state.URLs.GamesList == "" {
		return "", false
	}
	return state.URLs.GamesList, true
}

// AllGamesListURLs returns the games list entry of every active state,
// keyed by state.
func (s *Service) AllGamesListURLs() map[string]GamesListEntry {
	urls := map[string]GamesListEntry{}
	for _, state := range s.ActiveStates() {
		if state.URLs.GamesList == "" {
			continue
		}
		urls[state.Key] = GamesListEntry{
			URL:      state.URLs.GamesList,
			Name:     state.Name,
			StateKey: state.Key,
		}
	}
	return urls
}

// SupportedDomains returns the domain listing of every active state,
// keyed by state.
func (s *Service) SupportedDomains() map[string]DomainEntry {
	domains := map[string]DomainEntry{}
	for _, state := range s.ActiveStates() {
		domains[state.Key] = DomainEntry{
			Name:    state.Name,
			Domains: state.Domains,
			BaseURL: state.BaseURL,
		}
	}
	return domains
}

func (s *Service) Stats() Stats {
	active := s.ActiveStates()
	keys := make([]string, 0, len(active))
	for _, state := range active {
		keys = append(keys, state.Key)
	}
	return Stats{
		TotalStates:    len(s.config.States),
		ActiveStates:   len(active),
		InactiveStates: len(s.config.States) - len(active),
		States:         keys,
	}
}
