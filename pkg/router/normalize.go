package router

import "strings"

// NormalizeRoot makes root start with "/" and drop one trailing "/". A root
// of "/" or "" becomes "".
func NormalizeRoot(root string) string {
	if !strings.HasPrefix(root, "/") {
		root = "/" + root
	}
	return strings.TrimSuffix(root, "/")
}

// hashPath strips the leading "#", a leading "/" and a trailing "/" from a
// location fragment.
func hashPath(hash string) string {
	hash = strings.TrimPrefix(hash, "#")
	hash = strings.TrimPrefix(hash, "/")
	return strings.TrimSuffix(hash, "/")
}

// rootPath strips the trailing "/", then root and its following "/" from a
// location path. A path outside root only loses its leading "/".
func rootPath(pathname, root string) string {
	pathname = strings.TrimSuffix(pathname, "/")
	if pathname == root || strings.HasPrefix(pathname, root+"/") {
		return strings.TrimPrefix(pathname[len(root):], "/")
	}
	return strings.TrimPrefix(pathname, "/")
}

// targetPath coerces a navigation target to start with "/".
func targetPath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// Split returns the segments of a normalized path. The root path yields a
// single empty segment.
func Split(path string) []string {
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}
