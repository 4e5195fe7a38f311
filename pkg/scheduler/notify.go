package scheduler

import (
	"time"

	"github.com/linguflow/linguflow/pkg/observer"
)

func (r *run) notifyRunStart(startTime time.Time) {
	if !r.scheduler.observerMgr.HasObservers() {
		return
	}
	r.scheduler.observerMgr.Notify(r.ctx, observer.Event{
		Type:          observer.EventRunStart,
		Status:        observer.StatusStarted,
		Timestamp:     startTime,
		InteractionID: r.rc.InteractionID(),
		VersionID:     r.rc.VersionID(),
		StartTime:     startTime,
	})
}

func (r *run) notifyRunEnd(startTime time.Time, result interface{}, err error) {
	if !r.scheduler.observerMgr.HasObservers() {
		return
	}
	status := observer.StatusSuccess
	if err != nil {
		status = observer.StatusFailure
	}
	r.scheduler.observerMgr.Notify(r.ctx, observer.Event{
		Type:          observer.EventRunEnd,
		Status:        status,
		Timestamp:     time.Now(),
		InteractionID: r.rc.InteractionID(),
		VersionID:     r.rc.VersionID(),
		StartTime:     startTime,
		ElapsedTime:   time.Since(startTime),
		Result:        result,
		Error:         err,
	})
}

func (r *run) notifyNodeStart(nodeID, nodeType string, startTime time.Time) {
	if !r.scheduler.observerMgr.HasObservers() {
		return
	}
	r.scheduler.observerMgr.Notify(r.ctx, observer.Event{
		Type:          observer.EventNodeStart,
		Status:        observer.StatusStarted,
		Timestamp:     startTime,
		InteractionID: r.rc.InteractionID(),
		VersionID:     r.rc.VersionID(),
		NodeID:        nodeID,
		NodeType:      nodeType,
		StartTime:     startTime,
	})
}

func (r *run) notifyNodeSuccess(nodeID, nodeType string, startTime time.Time, result interface{}) {
	if !r.scheduler.observerMgr.HasObservers() {
		return
	}
	r.scheduler.observerMgr.Notify(r.ctx, observer.Event{
		Type:          observer.EventNodeSuccess,
		Status:        observer.StatusSuccess,
		Timestamp:     time.Now(),
		InteractionID: r.rc.InteractionID(),
		VersionID:     r.rc.VersionID(),
		NodeID:        nodeID,
		NodeType:      nodeType,
		StartTime:     startTime,
		ElapsedTime:   time.Since(startTime),
		Result:        result,
	})
}

func (r *run) notifyNodeFailure(nodeID, nodeType string, startTime time.Time, err error) {
	if !r.scheduler.observerMgr.HasObservers() {
		return
	}
	r.scheduler.observerMgr.Notify(r.ctx, observer.Event{
		Type:          observer.EventNodeFailure,
		Status:        observer.StatusFailure,
		Timestamp:     time.Now(),
		InteractionID: r.rc.InteractionID(),
		VersionID:     r.rc.VersionID(),
		NodeID:        nodeID,
		NodeType:      nodeType,
		StartTime:     startTime,
		ElapsedTime:   time.Since(startTime),
		Error:         err,
	})
}
