//go:build !linux && !darwin && !windows

package platform

func playerCandidates() []playerCommand {
	return nil
}
