// Package buildinfo reads the version metadata file that ships inside an
// installed resource tree (resources/build_info.json).
package buildinfo
