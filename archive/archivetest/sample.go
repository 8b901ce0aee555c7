// Package archivetest provides a small performances document for tests.
package archivetest

import (
	"strings"

	"github.com/user/setlist-archive-cli/archive"
)

// SampleJSON is a three-show performances document.
const SampleJSON = `{
  "performances": {
    "20240301": {
      "venue": "Bowery Ballroom", "city": "New York", "state": "NY", "country": "USA",
      "complete": true, "mediaType": "video",
      "setlist": [
        {"num": 1, "title": "Intro", "videoId": "v20240301", "start": 0, "timestamp": "0:00"},
        {"num": 2, "title": "Vines", "highlight": true, "videoId": "v20240301", "start": 95, "timestamp": "1:35"},
        {"num": 3, "title": "LSD", "videoId": "v20240301", "start": 210, "timestamp": "3:30"},
        {"num": 4, "title": "Shenandoah"}
      ],
      "videos": [
        {"id": "v20240301", "youtubeId": "aaaaaaaaaaa", "label": "Full set"}
      ]
    },
    "20250510": {
      "venue": "Le Trabendo", "city": "Paris", "country": "FR",
      "setlist": [
        {"num": 1, "title": "Nausicaä (Love Will Be Revealed)", "videoId": "v20250510a", "start": 0, "timestamp": "0:00"},
        {"num": 2, "title": "Drinking Age", "videoId": "v20250510a", "start": 180, "timestamp": "3:00"},
        {"num": 3, "title": "Sandbag", "videoId": "v20250510b", "start": 30, "timestamp": "0:30"},
        {"num": 4, "title": "Vines", "partial": true}
      ],
      "videos": [
        {"id": "v20250510a", "youtubeId": "bbbbbbbbbbb", "label": "Part 1"},
        {"id": "v20250510b", "youtubeId": "ccccccccccc", "label": "Part 2"}
      ]
    },
    "20251130": {
      "venue": "The Lexington", "city": "London", "country": "UK",
      "setlist": [
        {"num": 1, "title": "Credits", "videoId": "v20251130", "start": 0, "timestamp": "0:00"},
        {"num": 2, "title": "John Henry", "videoId": "v20251130", "start": 120, "timestamp": "2:00"},
        {"num": 3, "title": "Please"}
      ],
      "videos": [
        {"id": "v20251130", "youtubeId": "ddddddddddd", "label": "Audience recording"}
      ]
    }
  }
}`

// Sample parses SampleJSON.
func Sample() *archive.Archive {
	a, err := archive.Parse(strings.NewReader(SampleJSON))
	if err != nil {
		panic(err)
	}
	return a
}
