// Package tagging assigns facet tags to papers by keyword matching
// against title and abstract. Rules are fixed at build time; tags
// already present on a record are treated as manual edits and left
// alone by the pipeline (see store.Upsert).
package tagging

import (
	"regexp"
	"sort"
	"strings"
)

// rule is one facet tag with the patterns that trigger it. A single
// pattern hit assigns the tag; patterns within a rule are
// alternatives, not conjunctions.
type rule struct {
	tag      string
	patterns []*regexp.Regexp
}

func mustRule(tag string, exprs ...string) rule {
	r := rule{tag: tag}
	for _, e := range exprs {
		r.patterns = append(r.patterns, regexp.MustCompile("(?i)"+e))
	}
	return r
}

// rules mirror the curation heuristics used for the Gaussian
// Splatting catalog. Order does not matter; Assign sorts its output.
var rules = []rule{
	mustRule("Dynamic",
		`dynamic`, `deformable`, `temporal`, `4d[\s\-]`, `time[\s\-]varying`, `motion`),
	mustRule("SLAM",
		`\bslam\b`, `simultaneous localization`, `visual odometry`, `mapping and localization`),
	mustRule("Avatar",
		`avatar`, `human body`, `human reconstruction`, `animatable`, `body model`,
		`face reconstruction`, `head avatar`, `hand avatar`, `drivable`),
	mustRule("Autonomous Driving",
		`autonomous driving`, `self[\s\-]driving`, `street[\s\-]view`, `urban scene`,
		`driving scene`, `lidar`),
	mustRule("Medical",
		`medical`, `surgical`, `endoscop`, `colonoscop`, `ct[\s\-]`, `mri[\s\-]`,
		`radiology`, `anatomy`),
	mustRule("Compression",
		`compress`, `compact`, `pruning`, `quantiz`, `lightweight`, `efficient representation`),
	mustRule("Mesh",
		`\bmesh\b`, `surface reconstruction`, `marching cubes`, `sdf[\s\-]`, `signed distance`),
	mustRule("Rendering",
		`real[\s\-]time rendering`, `novel view`, `view synthesis`, `relighting`,
		`anti[\s\-]alias`, `ray tracing`),
	mustRule("Editing",
		`editing`, `manipulation`, `styliz`, `text[\s\-]driven`, `inpainting`, `scene editing`),
	mustRule("Generation",
		`generat`, `diffusion`, `text[\s\-]to[\s\-]3d`, `image[\s\-]to[\s\-]3d`,
		`dreamfusion`, `score distillation`),
	mustRule("Segmentation",
		`segment`, `semantic`, `panoptic`, `instance[\s\-]`, `object[\s\-]detection`),
	mustRule("Physics",
		`physic`, `simulat`, `fluid`, `cloth`, `elastic`, `deformation`),
	mustRule("Sparse View",
		`sparse[\s\-]view`, `few[\s\-]shot`, `single[\s\-]image`, `one[\s\-]shot`, `limited view`),
	mustRule("Language",
		`language`, `\bllm\b`, `\bclip\b`, `open[\s\-]vocabulary`, `text[\s\-]guided`,
		`natural language`),
	mustRule("Robotics",
		`robot`, `grasp`, `manipulat`, `navigation`, `planning`),
}

// Assign returns the sorted set of tags whose patterns match the
// paper's title or abstract. An empty result is normal - not every
// paper fits a facet.
func Assign(title, abstract string) []string {
	text := strings.ToLower(title + " " + abstract)
	var tags []string
	for _, r := range rules {
		for _, pat := range r.patterns {
			if pat.MatchString(text) {
				tags = append(tags, r.tag)
				break
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Known returns every tag the rule table can assign, sorted. The UI
// uses this to validate facet selections arriving from URLs.
func Known() []string {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.tag)
	}
	sort.Strings(out)
	return out
}
