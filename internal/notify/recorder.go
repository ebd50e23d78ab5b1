package notify

import "sync"

// Recorder gom các thông báo phát sinh trong một thao tác (một request HTTP, một lệnh CLI)
// và chuyển tiếp sang Notifier khác nếu có.
type Recorder struct {
	mu      sync.Mutex
	forward Notifier
	notices []Notice
}

// NewRecorder tạo Recorder; forward có thể nil
func NewRecorder(forward Notifier) *Recorder {
	if forward == nil {
		forward = Nop{}
	}
	return &Recorder{forward: forward}
}

func (r *Recorder) Success(message string) Notice {
	return r.add(r.forward.Success(message))
}

func (r *Recorder) Error(message string) Notice {
	return r.add(r.forward.Error(message))
}

func (r *Recorder) Dismiss(id string) bool {
	r.mu.Lock()
	for i, n := range r.notices {
		if n.ID == id {
			r.notices = append(r.notices[:i:i], r.notices[i+1:]...)
			break
		}
	}
	r.mu.Unlock()
	return r.forward.Dismiss(id)
}

// Notices trả về bản sao các thông báo đã ghi nhận
func (r *Recorder) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Errors trả về các thông báo lỗi đã ghi nhận
func (r *Recorder) Errors() []Notice {
	var out []Notice
	for _, n := range r.Notices() {
		if n.Level == LevelError {
			out = append(out, n)
		}
	}
	return out
}

func (r *Recorder) add(n Notice) Notice {
	r.mu.Lock()
	r.notices = append(r.notices, n)
	r.mu.Unlock()
	return n
}
