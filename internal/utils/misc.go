package utils

// Permissive localhost origin used when the cors_high_security flag is off.
const CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

func Ptr[T any](v T) *T {
	return &v
}
