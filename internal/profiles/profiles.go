// Package profiles defines the built-in port profiles for portsight.
// The profile table is assembled once at startup and is read-only
// thereafter; Get hands out copies so callers can never mutate it.
package profiles

// Profile is a named, ordered port list with a human description.
type Profile struct {
	Name        string
	Description string
	Ports       []int
}

const (
	// ProfileRecon is the default sweep: common service ports across
	// web, remote access, mail, and databases.
	ProfileRecon = "recon"
	// ProfileCore is a short list of the highest-value ports.
	ProfileCore = "core"
	// ProfileFull covers the full well-known range 1-1024.
	ProfileFull = "full"
)

var builtin = buildProfiles()

func buildProfiles() map[string]Profile {
	full := make([]int, 0, 1024)
	for port := 1; port <= 1024; port++ {
		full = append(full, port)
	}

	return map[string]Profile{
		ProfileRecon: {
			Name:        ProfileRecon,
			Description: "Common service ports for a first-pass sweep",
			Ports: []int{
				21, 22, 23, 25, 53, 80, 110, 111, 135, 139, 143, 443, 445,
				587, 993, 995, 1433, 1723, 3128, 3306, 3389, 5432, 5900,
				6379, 8000, 8080, 8443, 8888, 9000, 9090, 9443, 27017,
			},
		},
		ProfileCore: {
			Name:        ProfileCore,
			Description: "Minimal high-value ports",
			Ports: []int{
				21, 22, 25, 53, 80, 110, 143, 443, 445, 3306, 3389, 8080, 8443,
			},
		},
		ProfileFull: {
			Name:        ProfileFull,
			Description: "Full well-known range (1-1024)",
			Ports:       full,
		},
	}
}

// Get returns the named profile and whether it exists. The returned
// port slice is a copy.
func Get(name string) (Profile, bool) {
	profile, ok := builtin[name]
	if !ok {
		return Profile{}, false
	}
	ports := make([]int, len(profile.Ports))
	copy(ports, profile.Ports)
	profile.Ports = ports
	return profile, true
}

// Names returns the profile names in display order.
func Names() []string {
	return []string{ProfileRecon, ProfileCore, ProfileFull}
}

// All returns every built-in profile in display order.
func All() []Profile {
	profiles := make([]Profile, 0, len(builtin))
	for _, name := range Names() {
		profile, _ := Get(name)
		profiles = append(profiles, profile)
	}
	return profiles
}
