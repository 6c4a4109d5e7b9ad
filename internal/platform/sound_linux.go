//go:build linux

package platform

func playerCandidates() []playerCommand {
	return []playerCommand{
		{name: "paplay", args: func(path string) []string { return []string{path} }},
		{name: "pw-play", args: func(path string) []string { return []string{path} }},
		{name: "mpg123", args: func(path string) []string { return []string{"-q", path} }},
		{name: "ffplay", args: func(path string) []string {
			return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", path}
		}},
	}
}
