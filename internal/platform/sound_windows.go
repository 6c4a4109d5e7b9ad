//go:build windows

package platform

import "fmt"

func playerCandidates() []playerCommand {
	return []playerCommand{
		{name: "powershell", args: func(path string) []string {
			script := fmt.Sprintf(
				"Add-Type -AssemblyName presentationCore; "+
					"$player = New-Object System.Windows.Media.MediaPlayer; "+
					"$player.Open([uri]%s); $player.Play(); Start-Sleep -Seconds 3",
				powershellQuote(path),
			)
			return []string{"-NoProfile", "-NonInteractive", "-Command", script}
		}},
	}
}
