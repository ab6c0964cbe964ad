package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo represents a registered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line and in URLs
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Variant     string `json:"variant"`     // Variant name (optional)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Builder constructs a fresh, unprocessed scene
type Builder func(opts Options) *Scene

// Preset pairs a scene's metadata with its builder
type Preset struct {
	Info  SceneInfo
	Build Builder
}

const (
	groupOutdoor = "Outdoor Scenes"
	groupCornell = "Cornell Box Scenes"
)

var presets = []Preset{
	{newSceneInfo("three-spheres", "", "", groupOutdoor, "Diffuse, glass and metal spheres on a checkered ground"), NewThreeSpheresScene},
	{newSceneInfo("random-spheres", "", "", groupOutdoor, "Hundreds of random small spheres around three large ones"), NewRandomSpheresScene},
	{newSceneInfo("globe", "", "", groupOutdoor, "Image-textured earth sphere"), NewGlobeScene},
	{newSceneInfo("lights-demo", "", "", groupOutdoor, "Marbled spheres lit by a rectangular area light"), NewLightsDemoScene},
	{newSceneInfo("cornell-box", "", "", groupCornell, "Classic Cornell box with two rotated boxes"), NewCornellScene},
	{newSceneInfo("cornell-smoke", "Cornell Box", "Smoke", groupCornell, "Cornell box with the boxes replaced by smoke volumes"), NewCornellSmokeScene},
	{newSceneInfo("cornell-feature-demo", "Cornell Box", "Feature Demo", groupCornell, "Checkered floor, mirror box, glass sphere and globe"), NewCornellFeatureDemoScene},
}

// newSceneInfo fills in the scene's names. An empty name is derived from the id.
func newSceneInfo(id, name, variant, group, description string) SceneInfo {
	if name == "" {
		name = titleCase(id)
	}

	displayName := name
	if variant != "" {
		displayName = fmt.Sprintf("%s - %s", name, variant)
	}

	return SceneInfo{
		ID:          id,
		Name:        name,
		DisplayName: displayName,
		Description: description,
		Group:       group,
		Variant:     variant,
	}
}

// ListScenes returns the metadata of every registered scene in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(presets))
	for i, preset := range presets {
		scenes[i] = preset.Info
	}
	return scenes
}

// LookupScene finds a registered scene by id
func LookupScene(id string) (Preset, bool) {
	for _, preset := range presets {
		if preset.Info.ID == id {
			return preset, true
		}
	}
	return Preset{}, false
}

// Build constructs the named scene
func Build(id string, opts Options) (*Scene, error) {
	preset, ok := LookupScene(id)
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(sceneIDs(), ", "))
	}
	return preset.Build(opts), nil
}

func sceneIDs() []string {
	ids := make([]string, len(presets))
	for i, preset := range presets {
		ids[i] = preset.Info.ID
	}
	return ids
}

// ListAllScenes returns every registered scene, grouped by category
func ListAllScenes() ScenesResponse {
	var response ScenesResponse

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	// Create ordered groups (outdoor first, then alphabetical)
	var groupNames []string
	for groupName := range groupMap {
		if groupName != groupOutdoor {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if outdoor, exists := groupMap[groupOutdoor]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupOutdoor,
			Scenes: outdoor,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response
}

// titleCase converts an id-style string to title case
// e.g., "cornell-box" -> "Cornell Box"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
