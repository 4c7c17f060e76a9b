// Package papis reads papis libraries from disk.
//
// A papis library is a directory tree in which every document lives in its
// own folder holding an info.yaml file and the attached files:
//
//	papers/
//	  lecun-2015/
//	    info.yaml
//	    paper.pdf
//
// Scanner turns such a tree into domain documents and Watcher reports
// changes to it using fsnotify.
package papis
