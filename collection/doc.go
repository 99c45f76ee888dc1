// Package collection holds the song table and the three song collections
// the player works with.
//
// Library is the full catalog, loaded once. Display is the subset currently
// shown and is replaced by every filter change. Playlist is the loop the
// playback session walks with next and previous; it is replaced only when a
// song is selected. All three hold ids into one Table, so the IsPlaying flag
// of a song is the same record whichever collection it is read through.
package collection
