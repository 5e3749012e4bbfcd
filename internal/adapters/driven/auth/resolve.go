// Package auth supplies the optional GitHub bearer credential.
package auth

// ResolveToken picks the effective token: an explicit flag wins over the
// environment, which wins over the configuration file.
func ResolveToken(flag, env, file string) string {
	switch {
	case flag != "":
		return flag
	case env != "":
		return env
	default:
		return file
	}
}
