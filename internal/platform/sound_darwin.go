//go:build darwin

package platform

func playerCandidates() []playerCommand {
	return []playerCommand{
		{name: "afplay", args: func(path string) []string { return []string{path} }},
	}
}
