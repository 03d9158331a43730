// Package constgen generates constant files from engine project settings.
package constgen

// Version is the constgen release version.
const Version = "0.3.0"
